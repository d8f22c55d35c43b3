package tts

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dubdub/ml-service/domain/repositories"
)

func TestSecMSGEC(t *testing.T) {
	a := secMSGEC(time.Unix(1700000000, 0))
	b := secMSGEC(time.Unix(1700000000-1700000000%300+299, 0))
	c := secMSGEC(time.Unix(1700000000-1700000000%300+300, 0))

	assert.Len(t, a, 64)
	assert.Equal(t, strings.ToUpper(a), a)
	assert.Equal(t, a, b, "tokens within one five minute window must match")
	assert.NotEqual(t, a, c)
}

func TestLongVoiceName(t *testing.T) {
	tests := map[string]string{
		"en-US-AriaNeural":      "Microsoft Server Speech Text to Speech Voice (en-US, AriaNeural)",
		"zh-CN-XiaoxiaoNeural":  "Microsoft Server Speech Text to Speech Voice (zh-CN, XiaoxiaoNeural)",
		"custom voice, already": "custom voice, already",
	}
	for in, want := range tests {
		assert.Equal(t, want, longVoiceName(in), in)
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "+0%", formatRate(0))
	assert.Equal(t, "-30%", formatRate(-30))
	assert.Equal(t, "+15%", formatRate(15))
}

func TestScrubText(t *testing.T) {
	assert.Equal(t, "a b\tc\nd\re f", scrubText("a\x00b\tc\nd\re\x1bf"))
}

func TestSplitText(t *testing.T) {
	t.Run("short text is one segment", func(t *testing.T) {
		assert.Equal(t, []string{"hello world"}, splitText("  hello world ", 4096))
	})

	t.Run("breaks at last space", func(t *testing.T) {
		assert.Equal(t, []string{"aaa bbb", "ccc"}, splitText("aaa bbb ccc", 9))
	})

	t.Run("never splits a rune", func(t *testing.T) {
		text := strings.Repeat("é", 10)
		segments := splitText(text, 5)
		for _, s := range segments {
			assert.True(t, utf8.ValidString(s))
			assert.LessOrEqual(t, len(s), 5)
		}
		assert.Equal(t, text, strings.Join(segments, ""))
	})

	t.Run("blank text has no segments", func(t *testing.T) {
		assert.Empty(t, splitText(" \n\t", 10))
	})
}

func TestParseBinaryMessage(t *testing.T) {
	t.Run("audio payload", func(t *testing.T) {
		payload, err := parseBinaryMessage(mpegFrame("mp3"))
		require.NoError(t, err)
		assert.Equal(t, "mp3", string(payload))
	})

	t.Run("missing content type with data", func(t *testing.T) {
		_, err := parseBinaryMessage(audioFrame([]byte("x"), "Path:audio\r\n"))
		assert.Error(t, err)
	})

	t.Run("missing content type without data", func(t *testing.T) {
		payload, err := parseBinaryMessage(audioFrame(nil, "Path:audio\r\n"))
		require.NoError(t, err)
		assert.Empty(t, payload)
	})

	t.Run("wrong path", func(t *testing.T) {
		_, err := parseBinaryMessage(audioFrame([]byte("x"), "Path:video\r\nContent-Type:audio/mpeg\r\n"))
		assert.Error(t, err)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := parseBinaryMessage([]byte{0x00, 0x40, 'P'})
		assert.Error(t, err)
	})
}

func TestParseMetadata(t *testing.T) {
	chunks, err := parseMetadata([]byte(`{"Metadata":[
		{"Type":"WordBoundary","Data":{"Offset":10,"Duration":20,"text":{"Text":"Tom &amp; Jerry"}}},
		{"Type":"SessionEnd","Data":{}}
	]}`))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, repositories.ChunkTypeWordBoundary, chunks[0].Type)
	assert.Equal(t, time.Microsecond, chunks[0].Offset)
	assert.Equal(t, "Tom & Jerry", chunks[0].Text)

	_, err = parseMetadata([]byte(`{"Metadata":[{"Type":"Viseme"}]}`))
	assert.Error(t, err)
}

func TestSSMLMessages(t *testing.T) {
	now := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)

	cfg := speechConfigMessage(now)
	assert.True(t, strings.HasPrefix(cfg, "X-Timestamp:Tue Mar 05 2024 07:08:09 GMT+0000 (Coordinated Universal Time)\r\n"))
	assert.Contains(t, cfg, `"wordBoundaryEnabled":"true"`)

	msg := ssmlMessage("req1", now, buildSSML("hi", "en-US-AriaNeural", 0))
	assert.Contains(t, msg, "X-RequestId:req1\r\n")
	assert.Contains(t, msg, "X-Timestamp:Tue Mar 05 2024 07:08:09 GMT+0000 (Coordinated Universal Time)Z\r\n")
	assert.Contains(t, msg, "<prosody pitch='+0Hz' rate='+0%' volume='+0%'>hi</prosody>")
}
