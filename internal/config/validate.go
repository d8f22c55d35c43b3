package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.TTS.Provider = strings.ToLower(strings.TrimSpace(c.TTS.Provider))

	switch c.LLM.Provider {
	case LLMProviderOpenAI, LLMProviderGemini, LLMProviderAnthropic:
	default:
		return fmt.Errorf("llm.provider must be one of openai, gemini, anthropic (got %q)", c.LLM.Provider)
	}

	if c.LLM.APIKey() == "" {
		return fmt.Errorf("%s environment variable is required", c.llmKeyEnv())
	}

	switch c.TTS.Provider {
	case TTSProviderEdge, TTSProviderMock:
	case TTSProviderElevenLabs:
		if c.TTS.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVEN_LABS_API_KEY environment variable is required when TTS_PROVIDER=elevenlabs")
		}
	default:
		return fmt.Errorf("tts.provider must be one of edge, elevenlabs, mock (got %q)", c.TTS.Provider)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.LLM.Timeout < 0 || c.TTS.Timeout < 0 {
		return fmt.Errorf("provider timeouts must be >= 0")
	}

	// A provider deadline must leave time to write the error response.
	if wt := c.Server.WriteTimeout; wt > 0 {
		if c.LLM.Timeout >= wt {
			return fmt.Errorf("LLM_TIMEOUT (%s) must be below SERVER_WRITE_TIMEOUT (%s)", c.LLM.Timeout, wt)
		}
		if c.TTS.Timeout >= wt {
			return fmt.Errorf("TTS_TIMEOUT (%s) must be below SERVER_WRITE_TIMEOUT (%s)", c.TTS.Timeout, wt)
		}
	}

	return nil
}

func (c *Config) llmKeyEnv() string {
	switch c.LLM.Provider {
	case LLMProviderGemini:
		return "GEMINI_API_KEY"
	case LLMProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
