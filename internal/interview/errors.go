package interview

import "fmt"

// ValidationError reports a missing or unusable candidate intake field. It is
// raised before any network call is made.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candidate: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PreconditionError reports a session operation invoked in the wrong state.
type PreconditionError struct {
	Op     string
	State  State
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("cannot %s in state %q", e.Op, e.State)
}
