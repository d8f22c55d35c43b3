package entities

// PartOfSpeechUnknown marks an analysis the provider could not classify
const PartOfSpeechUnknown = "UNKNOWN"

// SpeechSampleRateHz is the sample rate reported for every synthesized clip
const SpeechSampleRateHz = 24000

// SpeechSpeed selects the speaking rate of synthesized audio
type SpeechSpeed string

const (
	SpeechSpeedNormal SpeechSpeed = "normal"
	SpeechSpeedSlow   SpeechSpeed = "slow"
)

// MorphAnalysis is the base form and morphology of a word as used in a sentence
type MorphAnalysis struct {
	Word         string         `json:"word"`
	Lemma        string         `json:"lemma"`
	PartOfSpeech string         `json:"pos"`
	Features     map[string]any `json:"features"`
}

// Definition is a context-aware explanation of a word for language learners
type Definition struct {
	Word         string   `json:"word"`
	Lemma        string   `json:"lemma"`
	Definition   string   `json:"definition"`
	ContextScore float64  `json:"context_score"`
	Examples     []string `json:"examples"`
	Source       string   `json:"source"`
}

// Speech is a synthesized audio clip with playback metadata
type Speech struct {
	Text     string
	Language string
	Speed    SpeechSpeed
	Voice    string
	Audio    []byte
	// Duration is estimated from the text length, not measured from Audio
	DurationSeconds float64
	SampleRateHz    int
}
