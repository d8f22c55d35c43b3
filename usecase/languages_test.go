package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Spanish", LanguageName("es"))
	assert.Equal(t, "Hindi", LanguageName("hi"))
	assert.Equal(t, "tlh", LanguageName("tlh"))
	assert.Len(t, languageNames, 11)
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "ja-JP-NanamiNeural", VoiceFor("ja"))
	assert.Equal(t, "en-US-AriaNeural", VoiceFor(""))
	assert.Equal(t, "en-US-AriaNeural", VoiceFor("EN"))
	assert.Len(t, voices, 11)
}
