package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	LLM    LLMConfig
	TTS    TTSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Completion providers.
const (
	LLMProviderOpenAI    = "openai"
	LLMProviderGemini    = "gemini"
	LLMProviderAnthropic = "anthropic"
)

// LLMConfig selects and configures the text completion provider.
type LLMConfig struct {
	Provider        string        `env:"LLM_PROVIDER"      env-default:"openai"`
	Model           string        `env:"LLM_MODEL"`
	BaseURL         string        `env:"LLM_BASE_URL"`
	Timeout         time.Duration `env:"LLM_TIMEOUT"       env-default:"30s"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
}

// APIKey returns the credential of the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case LLMProviderOpenAI:
		return c.OpenAIAPIKey
	case LLMProviderGemini:
		return c.GeminiAPIKey
	case LLMProviderAnthropic:
		return c.AnthropicAPIKey
	}
	return ""
}

// Speech synthesis providers.
const (
	TTSProviderEdge       = "edge"
	TTSProviderElevenLabs = "elevenlabs"
	// TTSProviderMock synthesizes placeholder audio offline, for local development.
	TTSProviderMock = "mock"
)

// TTSConfig selects and configures the speech synthesis provider.
type TTSConfig struct {
	Provider     string        `env:"TTS_PROVIDER"      env-default:"edge"`
	Timeout      time.Duration `env:"TTS_TIMEOUT"       env-default:"45s"`
	EdgeEndpoint string        `env:"EDGE_TTS_ENDPOINT"`
	ElevenLabs   ElevenLabsConfig
}

// ElevenLabsConfig mirrors the ELEVEN_LABS_* environment.
type ElevenLabsConfig struct {
	APIKey       string `env:"ELEVEN_LABS_API_KEY"`
	APIBaseURL   string `env:"ELEVEN_LABS_API_BASE_URL"`
	VoiceID      string `env:"ELEVEN_LABS_VOICE_ID"`
	ModelID      string `env:"ELEVEN_LABS_MODEL_ID"`
	OutputFormat string `env:"ELEVEN_LABS_OUTPUT_FORMAT"`
}
