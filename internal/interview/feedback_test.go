package interview

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFeedbackReturnsCompletionVerbatim(t *testing.T) {
	stub := &stubClient{response: "## Feedback\n\nStrong structure.  "}
	generator := NewFeedbackGenerator(stub, zap.NewNop())

	feedback, err := generator.Generate(context.Background(), "Tell me about a conflict.", "Last year my teammate and I...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if feedback != stub.response {
		t.Fatalf("expected verbatim completion text, got %q", feedback)
	}

	if !strings.Contains(stub.lastPrompt, "Tell me about a conflict.") {
		t.Fatalf("expected prompt to contain the question, got:\n%s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, "Last year my teammate and I...") {
		t.Fatalf("expected prompt to contain the answer, got:\n%s", stub.lastPrompt)
	}
}

func TestFeedbackUsesPlaceholderForMissingAnswer(t *testing.T) {
	stub := &stubClient{response: "feedback"}
	generator := NewFeedbackGenerator(stub, zap.NewNop())

	if _, err := generator.Generate(context.Background(), "question", "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.lastPrompt, missingAnswerPlaceholder) {
		t.Fatalf("expected placeholder for missing answer, got:\n%s", stub.lastPrompt)
	}
}
