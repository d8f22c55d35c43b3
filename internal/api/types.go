package api

// HealthResponse reports service liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// LemmatizeRequest represents the request body for word lemmatization.
// Fields are pointers so that presence is required while "" is accepted.
type LemmatizeRequest struct {
	Word     *string `json:"word" validate:"required"`
	Sentence *string `json:"sentence" validate:"required"`
	Language *string `json:"language" validate:"required"`
}

// LemmatizeResponse represents the lemma and morphology of a word
type LemmatizeResponse struct {
	Word     string         `json:"word"`
	Lemma    string         `json:"lemma"`
	POS      string         `json:"pos"`
	Features map[string]any `json:"features"`
}

// DefinitionRequest represents the request body for a context-aware definition
type DefinitionRequest struct {
	Word     *string `json:"word" validate:"required"`
	Sentence *string `json:"sentence" validate:"required"`
	Language *string `json:"language" validate:"required"`
}

// DefinitionResponse represents a definition of a word in its sentence
type DefinitionResponse struct {
	Word         string   `json:"word"`
	Lemma        string   `json:"lemma"`
	Definition   string   `json:"definition"`
	ContextScore float64  `json:"context_score"`
	Examples     []string `json:"examples"`
	Source       string   `json:"source"`
}

// TTSRequest represents the request body for speech synthesis
type TTSRequest struct {
	Text     *string `json:"text" validate:"required"`
	Language *string `json:"language" validate:"required"`
	Speed    string  `json:"speed" validate:"omitempty,oneof=normal slow"`
}

// TTSResponse carries base64 encoded audio and its playback metadata
type TTSResponse struct {
	Text        string  `json:"text"`
	Language    string  `json:"language"`
	Speed       string  `json:"speed"`
	AudioBase64 string  `json:"audio_base64"`
	Duration    float64 `json:"duration"`
	SampleRate  int     `json:"sample_rate"`
}
