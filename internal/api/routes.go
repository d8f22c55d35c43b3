package api

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/entities"
)

const (
	ServiceName = "dubdub-ml-service"
	Version     = "1.0.0"
)

// Lemmatizer analyzes a word in its sentence
type Lemmatizer interface {
	Lemmatize(ctx context.Context, word, sentence, lang string) entities.Outcome[entities.MorphAnalysis]
}

// Definer explains a word in its sentence
type Definer interface {
	Define(ctx context.Context, word, sentence, lang string) entities.Outcome[entities.Definition]
}

// Synthesizer renders text to speech
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string, speed entities.SpeechSpeed) (entities.Speech, error)
}

// Dependencies are the use cases served over HTTP
type Dependencies struct {
	Lemmas      Lemmatizer
	Definitions Definer
	Speech      Synthesizer
}

type handler struct {
	deps   Dependencies
	logger *zap.Logger
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, deps Dependencies, logger *zap.Logger) {
	h := &handler{deps: deps, logger: logger}

	g := e.Group("/api")
	g.GET("/health", h.health)
	g.POST("/lemmatize", h.lemmatize)
	g.POST("/definition", h.definition)
	g.POST("/tts", h.tts)
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: Version,
	})
}

func (h *handler) lemmatize(c echo.Context) error {
	var req LemmatizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out := h.deps.Lemmas.Lemmatize(c.Request().Context(), *req.Word, *req.Sentence, *req.Language)
	if out.Degraded {
		h.logger.Warn("Serving fallback lemmatization",
			zap.String("word", *req.Word),
			zap.Error(out.Cause))
	}

	return c.JSON(http.StatusOK, LemmatizeResponse{
		Word:     out.Value.Word,
		Lemma:    out.Value.Lemma,
		POS:      out.Value.PartOfSpeech,
		Features: out.Value.Features,
	})
}

func (h *handler) definition(c echo.Context) error {
	var req DefinitionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out := h.deps.Definitions.Define(c.Request().Context(), *req.Word, *req.Sentence, *req.Language)
	if out.Degraded {
		h.logger.Warn("Serving fallback definition",
			zap.String("word", *req.Word),
			zap.Error(out.Cause))
	}

	return c.JSON(http.StatusOK, DefinitionResponse{
		Word:         out.Value.Word,
		Lemma:        out.Value.Lemma,
		Definition:   out.Value.Definition,
		ContextScore: out.Value.ContextScore,
		Examples:     out.Value.Examples,
		Source:       out.Value.Source,
	})
}

func (h *handler) tts(c echo.Context) error {
	var req TTSRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Speed == "" {
		req.Speed = string(entities.SpeechSpeedNormal)
	}

	text, lang := *req.Text, *req.Language
	speech, err := h.deps.Speech.Synthesize(c.Request().Context(), text, lang, entities.SpeechSpeed(req.Speed))
	if err != nil {
		h.logger.Error("TTS generation failed",
			zap.String("language", lang),
			zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "TTS generation failed: "+err.Error()).SetInternal(err)
	}

	return c.JSON(http.StatusOK, TTSResponse{
		Text:        text,
		Language:    lang,
		Speed:       req.Speed,
		AudioBase64: base64.StdEncoding.EncodeToString(speech.Audio),
		Duration:    speech.DurationSeconds,
		SampleRate:  speech.SampleRateHz,
	})
}
