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

func TestGeminiLLM_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), "unexpected path %s", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		genCfg := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", genCfg["responseMimeType"])
		assert.EqualValues(t, 300, genCfg["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"lemma\":"},{"text":"\"run\"}"}]}}]}`))
	}))
	defer srv.Close()

	client, err := NewGeminiLLM(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", client.Model())

	got, err := client.Complete(context.Background(), repositories.CompletionRequest{
		System:      "You are a linguistics expert.",
		Prompt:      "Analyze ran",
		Temperature: 0.3,
		MaxTokens:   300,
		JSON:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"lemma":"run"}`, got)
}

func TestGeminiLLM_Complete_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, err := NewGeminiLLM(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), repositories.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
