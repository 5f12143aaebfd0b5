package cmd

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		AI: &AIConfig{
			Provider: "openai",
			OpenAI: &OpenAIConfig{
				APIKeyFile:    "/tmp/key",
				VectorStoreID: "vs_123",
			},
		},
	}
}

func TestValidateAcceptsOpenAIConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDefaultsProviderToOpenAI(t *testing.T) {
	config := validConfig()
	config.AI.Provider = ""

	if err := config.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresVectorStoreID(t *testing.T) {
	config := validConfig()
	config.AI.OpenAI.VectorStoreID = "  "

	err := config.Validate()
	if !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("expected missing configuration error, got %v", err)
	}

	if !strings.Contains(err.Error(), "ai.openai.vector-store-id") {
		t.Fatalf("expected error to name the missing key, got %q", err.Error())
	}
}

func TestValidateRequiresAISection(t *testing.T) {
	var config *Config
	if err := config.Validate(); !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("expected missing configuration error, got %v", err)
	}
}

func TestValidateGeminiProvider(t *testing.T) {
	config := &Config{AI: &AIConfig{Provider: "gemini", Gemini: &GeminiConfig{APIKeyFile: "/tmp/key"}}}
	if err := config.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	config.AI.Gemini = nil
	if err := config.Validate(); !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("expected missing configuration error, got %v", err)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	config := validConfig()
	config.AI.Provider = "anthropic"

	err := config.Validate()
	if err == nil || !strings.Contains(err.Error(), "unsupported ai provider") {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func TestStorePathFallsBackToDefault(t *testing.T) {
	var config *Config
	if got := config.storePath(); got != defaultStorePath {
		t.Fatalf("expected default store path, got %q", got)
	}

	config = &Config{Store: "custom.db"}
	if got := config.storePath(); got != "custom.db" {
		t.Fatalf("expected configured store path, got %q", got)
	}
}
