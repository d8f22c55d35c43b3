package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrNoAudio is returned when a synthesis stream finishes without any audio bytes
var ErrNoAudio = errors.New("no audio was received from the speech service")

// TextToSpeech abstracts streaming speech synthesis providers
type TextToSpeech interface {
	// ConvertTextToSpeech starts a synthesis and streams its chunks in arrival order.
	// The channel is closed when the stream ends; a failure mid-stream is delivered
	// as a final chunk of type ChunkTypeError.
	ConvertTextToSpeech(ctx context.Context, req SpeechRequest) (<-chan SpeechChunk, error)
}

// SpeechRequest describes one synthesis
type SpeechRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
	// RatePercent adjusts speaking rate relative to the voice default, e.g. -20 for 20% slower
	RatePercent int `json:"rate_percent"`
}

// ChunkType tags the variant carried by a SpeechChunk
type ChunkType string

const (
	ChunkTypeAudio            ChunkType = "audio"
	ChunkTypeWordBoundary     ChunkType = "WordBoundary"
	ChunkTypeSentenceBoundary ChunkType = "SentenceBoundary"
	ChunkTypeError            ChunkType = "error"
)

// SpeechChunk is one element of a synthesis stream
type SpeechChunk struct {
	Type ChunkType

	// Data holds encoded audio bytes for ChunkTypeAudio
	Data []byte

	// Offset, Duration and Text describe boundary events
	Offset   time.Duration
	Duration time.Duration
	Text     string

	// Err is set for ChunkTypeError
	Err error
}
