package interview

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/logger"

	"go.uber.org/zap"
)

// QuestionCount is the number of questions an interview is built from.
const QuestionCount = 5

// QuestionGenerator turns candidate intake data into STAR interview questions
// with one completion call.
type QuestionGenerator struct {
	client ai.Client
	logger *zap.Logger
}

func NewQuestionGenerator(client ai.Client, log *zap.Logger) *QuestionGenerator {
	return &QuestionGenerator{client: client, logger: logger.WithFields(log)}
}

// Generate returns up to QuestionCount question strings in response order.
// A response with fewer lines than requested is accepted as-is and logged;
// a response with no usable lines fails as invalid.
func (g *QuestionGenerator) Generate(ctx context.Context, candidate *Candidate) ([]string, error) {
	raw, err := g.client.Complete(ctx, buildQuestionsPrompt(candidate))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions := parseQuestionLines(raw)
	if len(questions) == 0 {
		return nil, &ai.InvalidResponseError{Reason: "no questions in completion response"}
	}

	if len(questions) < QuestionCount {
		g.logger.Warn("model returned fewer questions than requested",
			zap.Int("expected", QuestionCount),
			zap.Int("got", len(questions)),
		)
	}

	return questions, nil
}

// listMarkerPattern matches leading numbering or bullets the model sometimes
// adds despite the prompt asking for bare lines.
var listMarkerPattern = regexp.MustCompile(`^(\d+[.)]|[-*])\s+`)

// parseQuestionLines splits the completion on line breaks, trims whitespace
// and leading list markers, drops empty lines and keeps at most the first
// QuestionCount lines.
func parseQuestionLines(raw string) []string {
	questions := make([]string, 0, QuestionCount)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(listMarkerPattern.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == QuestionCount {
			break
		}
	}
	return questions
}
