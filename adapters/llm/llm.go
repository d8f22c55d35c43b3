package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/repositories"
	"github.com/dubdub/ml-service/internal/config"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

// ErrEmptyCompletion is returned when a provider answers without any text
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Config holds the settings shared by every completion adapter
// Required fields:
// - APIKey: the provider credential
// Optional fields:
// - Model: model identifier (provider default when empty)
// - BaseURL: endpoint override, used by proxies and tests
// - Timeout: per-call deadline, zero disables it
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ValidateConfig validates the adapter Config
func ValidateConfig(cfg Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

// New builds the completion provider selected in cfg
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (repositories.TextCompletion, error) {
	c := Config{
		APIKey:  cfg.APIKey(),
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}

	var (
		client repositories.TextCompletion
		err    error
	)
	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		client, err = NewOpenAILLM(c, logger)
	case config.LLMProviderGemini:
		client, err = NewGeminiLLM(ctx, c, logger)
	case config.LLMProviderAnthropic:
		client, err = NewAnthropicLLM(c, logger)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func modelOrDefault(model, fallback string, logger *zap.Logger) string {
	if model != "" {
		return model
	}
	logger.Info("Using default model", zap.String("model", fallback))
	return fallback
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
