package interview

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"

	_ "embed"
)

//go:embed templates/summary.md
var summaryTemplateRaw string

// summaryTemplate is parsed once at package init and reused for every
// completed interview. The summary is a fixed template, not model output.
var summaryTemplate = template.Must(template.New("summary").Parse(summaryTemplateRaw))

type summaryData struct {
	Name          string
	QuestionCount int
	Percent       int
}

func renderSummary(name string, questionCount int, aggregate float64) string {
	data := summaryData{
		Name:          name,
		QuestionCount: questionCount,
		Percent:       int(math.Round(aggregate * 100)),
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return fmt.Sprintf("%s completed %d questions with an overall score of %d%%.",
			name, questionCount, data.Percent)
	}

	return strings.TrimSpace(buf.String())
}
