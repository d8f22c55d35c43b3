package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/repositories"
)

// Bytes of placeholder audio produced per byte of input text.
const mockBytesPerChar = 100

// MockTextToSpeech is an offline placeholder for text-to-speech. It emits one
// word boundary and one audio chunk per word so the whole pipeline can be run
// without network access.
type MockTextToSpeech struct {
	logger *zap.Logger
}

// Ensure MockTextToSpeech implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{logger: logger}
}

// ConvertTextToSpeech implements repositories.TextToSpeech
func (t *MockTextToSpeech) ConvertTextToSpeech(ctx context.Context, req repositories.SpeechRequest) (<-chan repositories.SpeechChunk, error) {
	words := strings.Fields(req.Text)
	if len(words) == 0 {
		return nil, fmt.Errorf("text cannot be empty")
	}

	t.logger.Info("Processing text-to-speech",
		zap.String("text", req.Text),
		zap.String("voice", req.Voice))

	chunks := make(chan repositories.SpeechChunk)

	go func() {
		defer close(chunks)

		var offset time.Duration
		pos := 0
		for _, w := range words {
			d := time.Duration(len([]rune(w))) * 100 * time.Millisecond
			if err := send(ctx, chunks, repositories.SpeechChunk{
				Type:     repositories.ChunkTypeWordBoundary,
				Offset:   offset,
				Duration: d,
				Text:     w,
			}); err != nil {
				return
			}
			offset += d

			// Fill with some pattern to simulate audio data
			data := make([]byte, len(w)*mockBytesPerChar)
			for i := range data {
				data[i] = byte((pos + i) % 256)
			}
			pos += len(data)

			if err := send(ctx, chunks, repositories.SpeechChunk{Type: repositories.ChunkTypeAudio, Data: data}); err != nil {
				return
			}
		}
	}()

	return chunks, nil
}
