package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/entities"
	"github.com/dubdub/ml-service/domain/repositories"
)

const (
	DefinitionSourceFallback = "fallback"

	defaultDefinition   = "No definition available"
	fallbackDefinition  = "AI temporarily unavailable. Please try again."
	defaultContextScore = 0.85
)

// DefinitionService explains what a word means in the sentence it was found in
type DefinitionService struct {
	llm    repositories.TextCompletion
	logger *zap.Logger
}

// NewDefinitionService creates a new definition service
func NewDefinitionService(llm repositories.TextCompletion, logger *zap.Logger) *DefinitionService {
	return &DefinitionService{llm: llm, logger: logger}
}

type definitionReply struct {
	Lemma        string   `json:"lemma"`
	Definition   string   `json:"definition"`
	ContextScore *float64 `json:"context_score"`
	Examples     []string `json:"examples"`
}

// Define never fails; a provider failure yields a degraded definition with
// source "fallback" and a zero context score.
func (s *DefinitionService) Define(ctx context.Context, word, sentence, lang string) entities.Outcome[entities.Definition] {
	s.logger.Info("Definition request",
		zap.String("word", word),
		zap.String("sentence", sentence),
		zap.String("language", lang))

	def, err := s.define(ctx, word, sentence, lang)
	if err != nil {
		s.logger.Error("Definition lookup failed",
			zap.String("word", word),
			zap.Error(err))
		return entities.Degraded(entities.Definition{
			Word:         word,
			Lemma:        lowerWord(word),
			Definition:   fallbackDefinition,
			ContextScore: 0,
			Examples:     []string{},
			Source:       DefinitionSourceFallback,
		}, err)
	}

	s.logger.Info("Defined word",
		zap.String("word", word),
		zap.String("source", def.Source))
	return entities.Ok(def)
}

func (s *DefinitionService) define(ctx context.Context, word, sentence, lang string) (entities.Definition, error) {
	content, err := s.llm.Complete(ctx, repositories.CompletionRequest{
		System:      definitionSystemPrompt,
		Prompt:      definitionPrompt(word, sentence, LanguageName(lang)),
		Temperature: 0.5,
		MaxTokens:   500,
		JSON:        true,
	})
	if err != nil {
		return entities.Definition{}, err
	}

	raw, err := extractJSON(content)
	if err != nil {
		return entities.Definition{}, err
	}

	var reply definitionReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return entities.Definition{}, fmt.Errorf("failed to parse definition reply: %w", err)
	}

	def := entities.Definition{
		Word:         word,
		Lemma:        reply.Lemma,
		Definition:   reply.Definition,
		ContextScore: defaultContextScore,
		Examples:     reply.Examples,
		Source:       s.llm.Model(),
	}
	if def.Lemma == "" {
		def.Lemma = lowerWord(word)
	}
	if def.Definition == "" {
		def.Definition = defaultDefinition
	}
	if reply.ContextScore != nil {
		def.ContextScore = clamp(*reply.ContextScore, 0, 1)
	}
	if def.Examples == nil {
		def.Examples = []string{}
	}
	return def, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
