package repositories

import "context"

// TextCompletion abstracts any chat/LLM completion provider
type TextCompletion interface {
	// Complete sends a single system+user exchange and returns the model's raw reply text
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Model returns the identifier of the model serving completions
	Model() string
}

// CompletionRequest is a provider-neutral single-turn completion request
type CompletionRequest struct {
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	// JSON asks the provider for a strict JSON object reply when it supports it
	JSON bool `json:"json"`
}
