package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	require.NoError(t, v.Validate(&TTSRequest{Text: ptr("t"), Language: ptr("en")}))
	require.NoError(t, v.Validate(&TTSRequest{Text: ptr("t"), Language: ptr("en"), Speed: "slow"}))
	require.NoError(t, v.Validate(&LemmatizeRequest{Word: ptr(""), Sentence: ptr(""), Language: ptr("")}),
		"present empty strings are valid")

	err := v.Validate(&TTSRequest{Speed: "fast"})
	require.Error(t, err)

	msg := validationMessage(err)
	assert.Contains(t, msg, "text: field required")
	assert.Contains(t, msg, "language: field required")
	assert.Contains(t, msg, "speed: must be one of [normal slow]")
}
