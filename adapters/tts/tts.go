package tts

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/entities"
	"github.com/dubdub/ml-service/domain/repositories"
	"github.com/dubdub/ml-service/internal/config"
)

// SampleRateHz is the sample rate of every audio format this package requests.
const SampleRateHz = entities.SpeechSampleRateHz


// New builds the speech synthesizer selected in cfg.
func New(cfg config.TTSConfig, logger *zap.Logger) (repositories.TextToSpeech, error) {
	switch cfg.Provider {
	case config.TTSProviderEdge:
		return NewEdgeTTS(EdgeConfig{
			Endpoint: cfg.EdgeEndpoint,
			Timeout:  cfg.Timeout,
		}, logger), nil
	case config.TTSProviderElevenLabs:
		synth, err := NewElevenLabsTTS(ElevenLabsConfig{
			APIKey:       cfg.ElevenLabs.APIKey,
			APIBaseURL:   cfg.ElevenLabs.APIBaseURL,
			VoiceID:      cfg.ElevenLabs.VoiceID,
			ModelID:      cfg.ElevenLabs.ModelID,
			OutputFormat: cfg.ElevenLabs.OutputFormat,
			Timeout:      cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return synth, nil
	case config.TTSProviderMock:
		return NewMockTextToSpeech(logger), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", cfg.Provider)
	}
}

// send delivers a chunk unless the consumer has gone away.
func send(ctx context.Context, ch chan<- repositories.SpeechChunk, chunk repositories.SpeechChunk) error {
	select {
	case ch <- chunk:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sendError delivers the terminal error chunk of a stream.
func sendError(ctx context.Context, ch chan<- repositories.SpeechChunk, err error) {
	_ = send(ctx, ch, repositories.SpeechChunk{Type: repositories.ChunkTypeError, Err: err})
}
