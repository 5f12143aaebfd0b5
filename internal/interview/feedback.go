package interview

import (
	"context"
	"fmt"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/logger"

	"go.uber.org/zap"
)

// FeedbackGenerator produces free-text STAR critique for one question/answer
// pair. The completion text is returned verbatim.
type FeedbackGenerator struct {
	client ai.Client
	logger *zap.Logger
}

func NewFeedbackGenerator(client ai.Client, log *zap.Logger) *FeedbackGenerator {
	return &FeedbackGenerator{client: client, logger: logger.WithFields(log)}
}

func (g *FeedbackGenerator) Generate(ctx context.Context, questionText, answerText string) (string, error) {
	raw, err := g.client.Complete(ctx, buildFeedbackPrompt(questionText, answerText))
	if err != nil {
		return "", fmt.Errorf("generate feedback: %w", err)
	}

	return raw, nil
}
