package usecase

// DefaultVoice is used for languages without a dedicated voice.
const DefaultVoice = "en-US-AriaNeural"

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
}

var voices = map[string]string{
	"en": "en-US-AriaNeural",
	"es": "es-ES-ElviraNeural",
	"fr": "fr-FR-DeniseNeural",
	"de": "de-DE-KatjaNeural",
	"it": "it-IT-ElsaNeural",
	"pt": "pt-BR-FranciscaNeural",
	"ja": "ja-JP-NanamiNeural",
	"ko": "ko-KR-SunHiNeural",
	"zh": "zh-CN-XiaoxiaoNeural",
	"ar": "ar-SA-ZariyahNeural",
	"hi": "hi-IN-SwaraNeural",
}

// LanguageName returns the English name of a language code, or the code itself
// when it is not known.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// VoiceFor returns the synthesizer voice for a language code.
func VoiceFor(code string) string {
	if voice, ok := voices[code]; ok {
		return voice
	}
	return DefaultVoice
}
