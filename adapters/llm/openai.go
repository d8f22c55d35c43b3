package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/repositories"
)

// OpenAILLM implements the TextCompletion interface using the OpenAI chat completions API
type OpenAILLM struct {
	client *openai.Client
	cfg    Config
	model  string
	logger *zap.Logger
}

var _ repositories.TextCompletion = (*OpenAILLM)(nil)

// NewOpenAILLM creates a new OpenAI completion client
func NewOpenAILLM(cfg Config, logger *zap.Logger) (*OpenAILLM, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
		logger.Info("Using custom OpenAI base URL", zap.String("baseURL", cfg.BaseURL))
	}

	return &OpenAILLM{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		model:  modelOrDefault(cfg.Model, defaultOpenAIModel, logger),
		logger: logger,
	}, nil
}

// Model implements repositories.TextCompletion
func (o *OpenAILLM) Model() string {
	return o.model
}

// Complete implements repositories.TextCompletion
func (o *OpenAILLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyCompletion
	}

	o.logger.Debug("OpenAI completion received",
		zap.String("model", resp.Model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens))

	return content, nil
}
