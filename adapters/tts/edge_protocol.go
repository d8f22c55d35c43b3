package tts

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dubdub/ml-service/domain/repositories"
)

// Seconds between 1601-01-01 (Windows file time epoch) and the Unix epoch.
const windowsEpochOffset = 11644473600

const edgeDateLayout = "Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)"

var shortVoiceName = regexp.MustCompile(`^([a-z]{2,})-([A-Z]{2,})-(.+Neural)$`)

// secMSGEC computes the DRM token the service expects, rounded down to
// five minute windows.
func secMSGEC(now time.Time) string {
	ticks := now.Unix() + windowsEpochOffset
	ticks -= ticks % 300
	ticks *= 10_000_000

	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", ticks, trustedClientToken)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func edgeDate(now time.Time) string {
	return now.UTC().Format(edgeDateLayout)
}

func speechConfigMessage(now time.Time) string {
	return fmt.Sprintf("X-Timestamp:%s\r\n"+
		"Content-Type:application/json; charset=utf-8\r\n"+
		"Path:speech.config\r\n\r\n"+
		`{"context":{"synthesis":{"audio":{"metadataoptions":{`+
		`"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"true"},`+
		`"outputFormat":"%s"}}}}`+"\r\n",
		edgeDate(now), EdgeOutputFormat)
}

func ssmlMessage(requestID string, now time.Time, ssml string) string {
	return fmt.Sprintf("X-RequestId:%s\r\n"+
		"Content-Type:application/ssml+xml\r\n"+
		"X-Timestamp:%sZ\r\n"+
		"Path:ssml\r\n\r\n"+
		"%s",
		requestID, edgeDate(now), ssml)
}

func buildSSML(text, voice string, ratePercent int) string {
	return "<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>" +
		"<voice name='" + longVoiceName(voice) + "'>" +
		"<prosody pitch='+0Hz' rate='" + formatRate(ratePercent) + "' volume='+0%'>" +
		escapeXML(text) +
		"</prosody></voice></speak>"
}

// longVoiceName expands "en-US-AriaNeural" into the service's full voice name.
// Names that do not look like short names are passed through.
func longVoiceName(voice string) string {
	m := shortVoiceName.FindStringSubmatch(voice)
	if m == nil {
		return voice
	}
	return fmt.Sprintf("Microsoft Server Speech Text to Speech Voice (%s-%s, %s)", m[1], m[2], m[3])
}

func formatRate(percent int) string {
	return fmt.Sprintf("%+d%%", percent)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// scrubText replaces control characters the service rejects with spaces.
// Tab, line feed and carriage return are kept.
func scrubText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return ' '
		}
		return r
	}, s)
}

// splitText cuts s into pieces of at most limit bytes, preferring to break
// after the last space or newline and never splitting a rune. Blank pieces
// are dropped.
func splitText(s string, limit int) []string {
	var segments []string
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if i := strings.LastIndexAny(s[:cut], " \n"); i > 0 {
			cut = i + 1
		}
		if cut == 0 {
			// A single rune wider than limit; take it whole.
			_, size := utf8.DecodeRuneInString(s)
			cut = size
		}
		if seg := strings.TrimSpace(s[:cut]); seg != "" {
			segments = append(segments, seg)
		}
		s = s[cut:]
	}
	if seg := strings.TrimSpace(s); seg != "" {
		segments = append(segments, seg)
	}
	return segments
}

// parseHeaders reads "Key:Value" lines separated by CRLF.
func parseHeaders(data []byte) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(string(data), "\r\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}

func parseTextMessage(data []byte) (map[string]string, []byte) {
	head, body, _ := bytes.Cut(data, []byte("\r\n\r\n"))
	return parseHeaders(head), body
}

// parseBinaryMessage returns the audio payload of a binary frame. The frame
// starts with a big endian uint16 header length followed by the headers.
func parseBinaryMessage(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("binary message is missing the header length")
	}

	headerLen := int(binary.BigEndian.Uint16(data[:2]))
	if len(data) < 2+headerLen {
		return nil, fmt.Errorf("binary message header length %d exceeds frame size %d", headerLen, len(data))
	}

	headers := parseHeaders(data[2 : 2+headerLen])
	payload := data[2+headerLen:]

	if path := headers["Path"]; path != "audio" {
		return nil, fmt.Errorf("unexpected binary message path %q", path)
	}

	contentType, ok := headers["Content-Type"]
	if !ok {
		if len(payload) > 0 {
			return nil, fmt.Errorf("binary message has audio data but no content type")
		}
		return nil, nil
	}
	if contentType != "audio/mpeg" {
		return nil, fmt.Errorf("unexpected audio content type %q", contentType)
	}

	return payload, nil
}

type edgeMetadata struct {
	Metadata []struct {
		Type string `json:"Type"`
		Data struct {
			Offset   int64 `json:"Offset"`
			Duration int64 `json:"Duration"`
			Text     struct {
				Text string `json:"Text"`
			} `json:"text"`
		} `json:"Data"`
	} `json:"Metadata"`
}

// parseMetadata converts audio.metadata bodies into boundary chunks.
// Offsets arrive in 100ns ticks.
func parseMetadata(body []byte) ([]repositories.SpeechChunk, error) {
	var meta edgeMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse audio metadata: %w", err)
	}

	var chunks []repositories.SpeechChunk
	for _, m := range meta.Metadata {
		var chunkType repositories.ChunkType
		switch m.Type {
		case "WordBoundary":
			chunkType = repositories.ChunkTypeWordBoundary
		case "SentenceBoundary":
			chunkType = repositories.ChunkTypeSentenceBoundary
		case "SessionEnd":
			continue
		default:
			return nil, fmt.Errorf("unknown metadata type %q", m.Type)
		}

		chunks = append(chunks, repositories.SpeechChunk{
			Type:     chunkType,
			Offset:   time.Duration(m.Data.Offset) * 100,
			Duration: time.Duration(m.Data.Duration) * 100,
			Text:     html.UnescapeString(m.Data.Text.Text),
		})
	}
	return chunks, nil
}
