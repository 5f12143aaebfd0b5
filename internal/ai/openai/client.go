package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultModel = "gpt-4o"

	maxLogLength = 200
)

// Config holds the provider settings resolved from configuration.
type Config struct {
	// APIKey is the bearer token for the chat-completion endpoint.
	APIKey string
	// Model overrides the default completion model.
	Model string
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string
	// VectorStoreID identifies the hosted vector store attached to the
	// coaching assistant. It is required by configuration and forwarded
	// with every session, but the completion workflow itself does not
	// read from it.
	VectorStoreID string
}

// Client implements ai.Client on top of the OpenAI chat-completions API.
type Client struct {
	api           *openai.Client
	model         string
	vectorStoreID string
	logger        *zap.Logger
}

// New creates a completion client for the OpenAI API backend.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &Client{
		api:           openai.NewClientWithConfig(clientConfig),
		model:         model,
		vectorStoreID: strings.TrimSpace(cfg.VectorStoreID),
		logger:        logger.WithCommonFields(log, "openai", model),
	}, nil
}

// Complete sends the prompt as a single user message under the fixed coaching
// system instruction and returns the first choice's text. One call per
// invocation: no retries, no backoff, no caching.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	c.logger.Debug("chat completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxLogLength)),
	)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ai.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: ai.Temperature,
		MaxTokens:   ai.MaxTokens,
	})
	if err != nil {
		return "", mapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ai.InvalidResponseError{Reason: "no choices in completion response"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &ai.InvalidResponseError{Reason: "empty completion content"}
	}

	c.logger.Debug("chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(content)),
		zap.String("response_preview", logger.TruncateForLog(content, maxLogLength)),
	)

	return content, nil
}

// VectorStoreID returns the configured vector store identifier.
func (c *Client) VectorStoreID() string { return c.vectorStoreID }

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := strings.TrimSpace(apiErr.Message)
		if message == "" {
			message = fmt.Sprintf("status %d", apiErr.HTTPStatusCode)
		}
		return &ai.APIError{StatusCode: apiErr.HTTPStatusCode, Message: message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ai.APIError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("status %d %s", reqErr.HTTPStatusCode, http.StatusText(reqErr.HTTPStatusCode)),
		}
	}

	return &ai.TransportError{Err: err}
}
