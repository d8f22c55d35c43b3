package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	lemmatizeSystemPrompt  = "You are a linguistics expert specializing in morphological analysis. Always respond with valid JSON."
	definitionSystemPrompt = "You are an expert language tutor who explains words clearly and simply to beginners. Always respond with valid JSON."
)

func lemmatizePrompt(word, sentence, lang string) string {
	return fmt.Sprintf(`You are a linguistics expert. Analyze this word in context:

Word: "%s"
Sentence: "%s"
Language: %s

Provide:
1. The lemma (base/dictionary form)
2. Part of speech (NOUN, VERB, ADJ, ADV, etc.)
3. Morphological features (tense, person, number, gender, mood, etc.)

Respond in JSON format:
{
  "lemma": "base form",
  "pos": "PART_OF_SPEECH",
  "features": {
    "Feature1": "Value1",
    "Feature2": "Value2"
  }
}`, word, sentence, lang)
}

func definitionPrompt(word, sentence, languageName string) string {
	return fmt.Sprintf(`You are a language learning tutor. A student clicked on the word "%s" in this sentence:

"%s"

Language: %s

Provide:
1. The base form (lemma) of this word
2. A clear, simple definition that explains what it means IN THIS SPECIFIC CONTEXT
3. 2-3 example sentences showing how this word is commonly used
4. A confidence score (0.0-1.0) for how well the definition matches the context

Respond in JSON format:
{
  "lemma": "base form of the word",
  "definition": "Simple, context-aware definition in English",
  "context_score": 0.95,
  "examples": [
    "Example sentence 1",
    "Example sentence 2"
  ]
}

Make the definition beginner-friendly and specific to how the word is used in the given sentence.`, word, sentence, languageName)
}

// extractJSON returns the outermost JSON object in a completion, dropping any
// prose or code fences around it.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// lowerWord lowercases with Unicode rules. Casers are not safe for concurrent
// use, so one is built per call.
func lowerWord(word string) string {
	return cases.Lower(language.Und).String(word)
}
