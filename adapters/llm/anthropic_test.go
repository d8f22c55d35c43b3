package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dubdub/ml-service/domain/repositories"
)

func TestAnthropicLLM_Complete_JSONPrefill(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), "unexpected path %s", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-5-haiku-latest", body["model"])
		assert.EqualValues(t, 500, body["max_tokens"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "\"definition\": \"a bench\"}"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 8}
		}`))
	}))
	defer srv.Close()

	client, err := NewAnthropicLLM(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), repositories.CompletionRequest{
		System:      "You are an expert language tutor.",
		Prompt:      "Define banco",
		Temperature: 0.5,
		MaxTokens:   500,
		JSON:        true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"definition": "a bench"}`, got)
}

func TestAnthropicLLM_Complete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	client, err := NewAnthropicLLM(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), repositories.CompletionRequest{Prompt: "x", MaxTokens: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic messages")
}
