package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dubdub/ml-service/adapters/llm"
	"github.com/dubdub/ml-service/adapters/tts"
	"github.com/dubdub/ml-service/internal/api"
	"github.com/dubdub/ml-service/internal/config"
	"github.com/dubdub/ml-service/internal/logging"
	"github.com/dubdub/ml-service/usecase"
)

func main() {
	// A missing .env is fine; the real environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize adapters
	completion, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Fatal("Failed to initialize completion provider",
			zap.String("provider", cfg.LLM.Provider),
			zap.Error(err))
	}

	speech, err := tts.New(cfg.TTS, logger)
	if err != nil {
		logger.Fatal("Failed to initialize speech provider",
			zap.String("provider", cfg.TTS.Provider),
			zap.Error(err))
	}

	// Initialize usecase services
	deps := api.Dependencies{
		Lemmas:      usecase.NewLemmaService(completion, logger),
		Definitions: usecase.NewDefinitionService(completion, logger),
		Speech:      usecase.NewSpeechService(speech, logger),
	}

	e := api.New(*cfg, deps, logger)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("addr", addr),
		zap.String("llmProvider", cfg.LLM.Provider),
		zap.String("llmModel", completion.Model()),
		zap.String("ttsProvider", cfg.TTS.Provider))

	<-ctx.Done()
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
