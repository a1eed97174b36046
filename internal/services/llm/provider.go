package llm

import (
	"context"
	"fmt"
)

// Supported provider names.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// ClientConfig selects and configures an analysis provider.
type ClientConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoints only
	Model       string
	Temperature float64
}

// NewClient builds the provider-specific client for cfg.
func NewClient(ctx context.Context, cfg ClientConfig) (Client, error) {
	switch cfg.Provider {
	case "", ProviderGoogle:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, float32(cfg.Temperature))
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}
