package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/entities"
	"github.com/dubdub/ml-service/domain/repositories"
)

const slowRatePercent = -20

// SpeechService renders text to a single audio clip
type SpeechService struct {
	tts    repositories.TextToSpeech
	logger *zap.Logger
}

// NewSpeechService creates a new speech service
func NewSpeechService(tts repositories.TextToSpeech, logger *zap.Logger) *SpeechService {
	return &SpeechService{tts: tts, logger: logger}
}

// Synthesize collects the audio chunks of one synthesis in arrival order.
// Boundary events are dropped. Duration is estimated from the character
// count: 10 characters per second, or 7 when slow.
func (s *SpeechService) Synthesize(ctx context.Context, text, lang string, speed entities.SpeechSpeed) (entities.Speech, error) {
	if speed == "" {
		speed = entities.SpeechSpeedNormal
	}
	voice := VoiceFor(lang)

	ratePercent := 0
	charsPerSecond := 10.0
	if speed == entities.SpeechSpeedSlow {
		ratePercent = slowRatePercent
		charsPerSecond = 7
	}

	s.logger.Info("TTS request",
		zap.String("text", text),
		zap.String("language", lang),
		zap.String("speed", string(speed)),
		zap.String("voice", voice))

	chunks, err := s.tts.ConvertTextToSpeech(ctx, repositories.SpeechRequest{
		Text:        text,
		Voice:       voice,
		Language:    lang,
		RatePercent: ratePercent,
	})
	if err != nil {
		return entities.Speech{}, err
	}

	var audio []byte
	for chunk := range chunks {
		switch chunk.Type {
		case repositories.ChunkTypeAudio:
			audio = append(audio, chunk.Data...)
		case repositories.ChunkTypeError:
			return entities.Speech{}, chunk.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return entities.Speech{}, fmt.Errorf("synthesis interrupted: %w", err)
	}
	if len(audio) == 0 {
		return entities.Speech{}, repositories.ErrNoAudio
	}

	duration := float64(utf8.RuneCountInString(text)) / charsPerSecond

	s.logger.Info("Generated audio",
		zap.Int("bytes", len(audio)),
		zap.Float64("estimatedSeconds", duration))

	return entities.Speech{
		Text:            text,
		Language:        lang,
		Speed:           speed,
		Voice:           voice,
		Audio:           audio,
		DurationSeconds: duration,
		SampleRateHz:    entities.SpeechSampleRateHz,
	}, nil
}
