package interview

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubClient struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGenerateReturnsFiveTrimmedQuestionsInOrder(t *testing.T) {
	stub := &stubClient{response: "  first question  \n\nsecond question\nthird question\n   \nfourth question\nfifth question\nsixth question"}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	questions, err := generator.Generate(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"first question",
		"second question",
		"third question",
		"fourth question",
		"fifth question",
	}

	if len(questions) != len(expected) {
		t.Fatalf("expected %d questions, got %d", len(expected), len(questions))
	}

	for i, want := range expected {
		if questions[i] != want {
			t.Fatalf("question %d: expected %q, got %q", i, want, questions[i])
		}
	}
}

func TestGenerateStripsListMarkers(t *testing.T) {
	stub := &stubClient{response: "1. first question\n2) second question\n- third question\n* fourth question\nfifth question"}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	questions, err := generator.Generate(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"first question",
		"second question",
		"third question",
		"fourth question",
		"fifth question",
	}

	for i, want := range expected {
		if questions[i] != want {
			t.Fatalf("question %d: expected %q, got %q", i, want, questions[i])
		}
	}
}

func TestGenerateAcceptsFewerQuestionsThanRequested(t *testing.T) {
	stub := &stubClient{response: "only question one\nonly question two"}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	questions, err := generator.Generate(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerateRejectsBlankResponse(t *testing.T) {
	stub := &stubClient{response: "   \n  \n"}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	if _, err := generator.Generate(context.Background(), validCandidate()); err == nil {
		t.Fatal("expected error for blank response")
	}
}

func TestGeneratePromptEmbedsCandidateFields(t *testing.T) {
	stub := &stubClient{response: fiveQuestions}
	generator := NewQuestionGenerator(stub, zap.NewNop())

	candidate := validCandidate()
	candidate.ResumeFileText = "extracted pdf text"

	if _, err := generator.Generate(context.Background(), candidate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		candidate.Name,
		candidate.Resume,
		candidate.JobDescription,
		candidate.Company,
		"extracted pdf text",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, stub.lastPrompt)
		}
	}

	// No job description file was supplied; the prompt falls back to the
	// placeholder instead of an empty section.
	if !strings.Contains(stub.lastPrompt, missingContentPlaceholder) {
		t.Fatalf("expected placeholder for missing file content")
	}
}
