package interview

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the intake fields required to start an interview: a name,
// résumé content (typed or extracted from a file) and job-description content
// (typed or extracted). The returned ValidationError names the first failing
// field in deterministic order.
func (c *Candidate) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Name,
			validation.By(requireText(c.Name, "candidate name is required"))),
		validation.Field(&c.Resume,
			validation.By(requireEither(c.Resume, c.ResumeFileText, "resume text or an extracted resume file is required"))),
		validation.Field(&c.JobDescription,
			validation.By(requireEither(c.JobDescription, c.JobDescriptionFileText, "job description text or an extracted job description file is required"))),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		return &ValidationError{Field: fields[0], Err: fieldErrs[fields[0]]}
	}

	return err
}

// requireText rejects values that are empty after trimming; whitespace-only
// input is treated the same as absent input everywhere in the intake flow.
func requireText(value, message string) validation.RuleFunc {
	return func(interface{}) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(message)
		}
		return nil
	}
}

func requireEither(typed, extracted, message string) validation.RuleFunc {
	return func(interface{}) error {
		if strings.TrimSpace(typed) == "" && strings.TrimSpace(extracted) == "" {
			return errors.New(message)
		}
		return nil
	}
}
