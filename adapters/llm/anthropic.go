package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/repositories"
)

// jsonPrefill starts the assistant turn so the model continues a JSON object.
// The Messages API has no JSON response mode.
const jsonPrefill = "{"

// AnthropicLLM implements the TextCompletion interface using the Anthropic Messages API
type AnthropicLLM struct {
	client anthropic.Client
	cfg    Config
	model  string
	logger *zap.Logger
}

var _ repositories.TextCompletion = (*AnthropicLLM)(nil)

// NewAnthropicLLM creates a new Anthropic completion client
func NewAnthropicLLM(cfg Config, logger *zap.Logger) (*AnthropicLLM, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		logger.Info("Using custom Anthropic base URL", zap.String("baseURL", cfg.BaseURL))
	}

	return &AnthropicLLM{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
		model:  modelOrDefault(cfg.Model, defaultAnthropicModel, logger),
		logger: logger,
	}, nil
}

// Model implements repositories.TextCompletion
func (a *AnthropicLLM) Model() string {
	return a.model
}

// Complete implements repositories.TextCompletion
func (a *AnthropicLLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
	}
	if req.JSON {
		messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(jsonPrefill)))
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    messages,
		Temperature: anthropic.Float(float64(req.Temperature)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyCompletion
	}

	if req.JSON {
		return jsonPrefill + text.String(), nil
	}
	return text.String(), nil
}
