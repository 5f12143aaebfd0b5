package interview

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/logger"

	"go.uber.org/zap"
)

// ScoreAnalyzer asks the model for the four STAR sub-scores of one answer.
// This is the one place the workflow enforces response shape strictly.
type ScoreAnalyzer struct {
	client ai.Client
	logger *zap.Logger
}

func NewScoreAnalyzer(client ai.Client, log *zap.Logger) *ScoreAnalyzer {
	return &ScoreAnalyzer{client: client, logger: logger.WithFields(log)}
}

// Analyze returns the parsed four-component score. Components outside [0, 1]
// are accepted unmodified and logged; correcting them would hide a
// non-conforming model rather than surface it.
func (a *ScoreAnalyzer) Analyze(ctx context.Context, answerText string) (*ScoreComponents, error) {
	raw, err := a.client.Complete(ctx, buildScorePrompt(answerText))
	if err != nil {
		return nil, fmt.Errorf("analyze answer: %w", err)
	}

	score, err := ParseScoreComponents(raw)
	if err != nil {
		return nil, err
	}

	if !score.inRange() {
		a.logger.Warn("score components outside [0,1]",
			zap.Float64("situation", score.Situation),
			zap.Float64("task", score.Task),
			zap.Float64("action", score.Action),
			zap.Float64("result", score.Result),
		)
	}

	return score, nil
}

// ParseScoreComponents splits the completion on commas, trims each token and
// silently drops tokens that fail numeric conversion. Anything other than
// exactly four numeric values fails as an invalid response.
func ParseScoreComponents(raw string) (*ScoreComponents, error) {
	values := make([]float64, 0, 4)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		values = append(values, value)
	}

	if len(values) != 4 {
		return nil, &ai.InvalidResponseError{
			Reason: fmt.Sprintf("expected 4 score components, got %d", len(values)),
		}
	}

	return &ScoreComponents{
		Situation: values[0],
		Task:      values[1],
		Action:    values[2],
		Result:    values[3],
	}, nil
}
