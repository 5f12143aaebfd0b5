package ai

import "context"

// Completion parameters shared by all providers. The coaching persona is part
// of the product contract: every prompt runs under the same system
// instruction, sampling temperature and token ceiling.
const (
	SystemInstruction = "You are an expert interview coach specializing in the STAR method " +
		"(Situation, Task, Action, Result) for behavioral interviews."
	Temperature = 0.7
	MaxTokens   = 1000
)

// Client runs a single best-effort completion call against a chat-completion
// provider. Implementations do not retry, cache or stream.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
