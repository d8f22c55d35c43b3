package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/dubdub/ml-service/internal/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug level to be enabled")
	}

	logger, err = New(config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info level to be disabled at warn")
	}

	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected error for invalid level")
	}
}
