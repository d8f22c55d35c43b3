package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/entities"
	"github.com/dubdub/ml-service/domain/repositories"
)

const fallbackFeatureMessage = "AI unavailable, showing word as-is"

// LemmaService finds the base form and morphology of a word in context
type LemmaService struct {
	llm    repositories.TextCompletion
	logger *zap.Logger
}

// NewLemmaService creates a new lemma service
func NewLemmaService(llm repositories.TextCompletion, logger *zap.Logger) *LemmaService {
	return &LemmaService{llm: llm, logger: logger}
}

type lemmaReply struct {
	Lemma    string         `json:"lemma"`
	POS      string         `json:"pos"`
	Features map[string]any `json:"features"`
}

// Lemmatize never fails: when the provider or its reply is unusable it
// returns a degraded analysis built from the word itself.
func (s *LemmaService) Lemmatize(ctx context.Context, word, sentence, lang string) entities.Outcome[entities.MorphAnalysis] {
	s.logger.Info("Lemmatize request",
		zap.String("word", word),
		zap.String("language", lang))

	analysis, err := s.analyze(ctx, word, sentence, lang)
	if err != nil {
		s.logger.Error("Lemmatization failed",
			zap.String("word", word),
			zap.Error(err))
		return entities.Degraded(entities.MorphAnalysis{
			Word:         word,
			Lemma:        lowerWord(word),
			PartOfSpeech: entities.PartOfSpeechUnknown,
			Features:     map[string]any{"error": fallbackFeatureMessage},
		}, err)
	}

	s.logger.Info("Lemmatized word",
		zap.String("word", word),
		zap.String("lemma", analysis.Lemma))
	return entities.Ok(analysis)
}

func (s *LemmaService) analyze(ctx context.Context, word, sentence, lang string) (entities.MorphAnalysis, error) {
	content, err := s.llm.Complete(ctx, repositories.CompletionRequest{
		System:      lemmatizeSystemPrompt,
		Prompt:      lemmatizePrompt(word, sentence, lang),
		Temperature: 0.3,
		MaxTokens:   300,
		JSON:        true,
	})
	if err != nil {
		return entities.MorphAnalysis{}, err
	}

	raw, err := extractJSON(content)
	if err != nil {
		return entities.MorphAnalysis{}, err
	}

	var reply lemmaReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return entities.MorphAnalysis{}, fmt.Errorf("failed to parse lemmatization reply: %w", err)
	}

	analysis := entities.MorphAnalysis{
		Word:         word,
		Lemma:        reply.Lemma,
		PartOfSpeech: reply.POS,
		Features:     reply.Features,
	}
	if analysis.Lemma == "" {
		analysis.Lemma = lowerWord(word)
	}
	if analysis.PartOfSpeech == "" {
		analysis.PartOfSpeech = entities.PartOfSpeechUnknown
	}
	if analysis.Features == nil {
		analysis.Features = map[string]any{}
	}
	return analysis, nil
}
