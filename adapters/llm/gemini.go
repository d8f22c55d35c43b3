package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dubdub/ml-service/domain/repositories"
)

// GeminiLLM implements the TextCompletion interface using Google's Gemini API
type GeminiLLM struct {
	client *genai.Client
	cfg    Config
	model  string
	logger *zap.Logger
}

var _ repositories.TextCompletion = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini LLM instance
func NewGeminiLLM(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiLLM, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		logger.Info("Using custom Gemini base URL", zap.String("baseURL", cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLLM{
		client: client,
		cfg:    cfg,
		model:  modelOrDefault(cfg.Model, defaultGeminiModel, logger),
		logger: logger,
	}, nil
}

// Model implements repositories.TextCompletion
func (g *GeminiLLM) Model() string {
	return g.model
}

// Complete implements repositories.TextCompletion
func (g *GeminiLLM) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   int32(req.MaxTokens),
	}
	if req.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyCompletion
	}

	return text.String(), nil
}
