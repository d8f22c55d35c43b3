package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dubdub/ml-service/internal/config"
)

func TestNew(t *testing.T) {
	logger := zaptest.NewLogger(t)

	synth, err := New(config.TTSConfig{Provider: config.TTSProviderEdge}, logger)
	require.NoError(t, err)
	assert.IsType(t, &EdgeTTS{}, synth)

	synth, err = New(config.TTSConfig{
		Provider:   config.TTSProviderElevenLabs,
		ElevenLabs: config.ElevenLabsConfig{APIKey: "k"},
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ElevenLabsTTS{}, synth)

	synth, err = New(config.TTSConfig{Provider: config.TTSProviderMock}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MockTextToSpeech{}, synth)

	_, err = New(config.TTSConfig{Provider: config.TTSProviderElevenLabs}, logger)
	assert.Error(t, err)

	_, err = New(config.TTSConfig{Provider: "polly"}, logger)
	assert.Error(t, err)
}
