package usecase

import (
	"context"

	"github.com/dubdub/ml-service/domain/repositories"
)

type fakeLLM struct {
	reply string
	err   error
	model string
	got   []repositories.CompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req repositories.CompletionRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

func (f *fakeLLM) Model() string {
	if f.model == "" {
		return "fake-model"
	}
	return f.model
}

type fakeTTS struct {
	chunks []repositories.SpeechChunk
	err    error
	got    []repositories.SpeechRequest
}

func (f *fakeTTS) ConvertTextToSpeech(_ context.Context, req repositories.SpeechRequest) (<-chan repositories.SpeechChunk, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan repositories.SpeechChunk, len(f.chunks))
	for _, c := range f.chunks {
		ch <- c
	}
	close(ch)
	return ch, nil
}
