package tts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dubdub/ml-service/domain/repositories"
)

const (
	defaultEdgeEndpoint = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	defaultEdgeVoice    = "en-US-AriaNeural"

	// EdgeOutputFormat is 24kHz mono MP3, matching SampleRateHz
	EdgeOutputFormat = "audio-24khz-48kbitrate-mono-mp3"

	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"
	secMSGECVersion    = "1-130.0.2849.68"
	edgeOrigin         = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"
	edgeUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"

	// Maximum bytes of text sent in one SSML request.
	maxSegmentBytes = 4096

	handshakeTimeout = 10 * time.Second
)

// EdgeConfig holds configuration for the EdgeTTS adapter
// Optional fields with defaults:
// - Endpoint: websocket URL of the read-aloud service
// - Timeout: deadline for a whole synthesis, zero disables it
type EdgeConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// EdgeTTS implements TextToSpeech against the Edge read-aloud websocket service
type EdgeTTS struct {
	endpoint string
	timeout  time.Duration
	dialer   *websocket.Dialer
	logger   *zap.Logger
	now      func() time.Time
}

// Ensure EdgeTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*EdgeTTS)(nil)

// NewEdgeTTS creates a new Edge TTS instance
func NewEdgeTTS(cfg EdgeConfig, logger *zap.Logger) *EdgeTTS {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEdgeEndpoint
		logger.Info("Using default Edge endpoint", zap.String("endpoint", endpoint))
	}

	return &EdgeTTS{
		endpoint: endpoint,
		timeout:  cfg.Timeout,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// ConvertTextToSpeech streams audio and word boundary chunks for req.
// Text longer than maxSegmentBytes is synthesized in consecutive segments
// whose chunks are emitted in order.
func (e *EdgeTTS) ConvertTextToSpeech(ctx context.Context, req repositories.SpeechRequest) (<-chan repositories.SpeechChunk, error) {
	segments := splitText(scrubText(req.Text), maxSegmentBytes)
	if len(segments) == 0 {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voice := req.Voice
	if voice == "" {
		voice = defaultEdgeVoice
	}

	e.logger.Info("Converting text to speech",
		zap.Int("textLength", len(req.Text)),
		zap.Int("segments", len(segments)),
		zap.String("voice", voice),
		zap.String("rate", formatRate(req.RatePercent)))

	chunks := make(chan repositories.SpeechChunk, 16)

	go func() {
		defer close(chunks)

		streamCtx, cancel := ctx, context.CancelFunc(func() {})
		if e.timeout > 0 {
			streamCtx, cancel = context.WithTimeout(ctx, e.timeout)
		}
		defer cancel()

		for i, segment := range segments {
			if err := e.streamSegment(streamCtx, segment, voice, req.RatePercent, chunks); err != nil {
				e.logger.Error("Edge synthesis failed",
					zap.Int("segment", i),
					zap.Error(err))
				sendError(ctx, chunks, err)
				return
			}
		}
	}()

	return chunks, nil
}

// streamSegment runs one websocket turn: speech.config, ssml, then reads
// frames until turn.end.
func (e *EdgeTTS) streamSegment(ctx context.Context, text, voice string, ratePercent int, chunks chan<- repositories.SpeechChunk) error {
	connectURL, err := e.connectURL()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Pragma", "no-cache")
	header.Set("Cache-Control", "no-cache")
	header.Set("Origin", edgeOrigin)
	header.Set("User-Agent", edgeUserAgent)
	header.Set("Accept-Language", "en-US,en;q=0.9")

	conn, resp, err := e.dialer.DialContext(ctx, connectURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect to speech service (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect to speech service: %w", err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the request goes away.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	now := e.now()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(speechConfigMessage(now))); err != nil {
		return fmt.Errorf("failed to send speech config: %w", err)
	}

	requestID := connectionID()
	ssml := buildSSML(text, voice, ratePercent)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlMessage(requestID, now, ssml))); err != nil {
		return fmt.Errorf("failed to send ssml: %w", err)
	}

	audioBytes := 0
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read from speech service: %w", err)
		}

		switch messageType {
		case websocket.TextMessage:
			headers, body := parseTextMessage(data)
			switch path := headers["Path"]; path {
			case "turn.start", "response":
			case "audio.metadata":
				boundaries, err := parseMetadata(body)
				if err != nil {
					return err
				}
				for _, b := range boundaries {
					if err := send(ctx, chunks, b); err != nil {
						return err
					}
				}
			case "turn.end":
				if audioBytes == 0 {
					return repositories.ErrNoAudio
				}
				e.logger.Debug("Finished streaming segment", zap.Int("totalBytes", audioBytes))
				return nil
			default:
				return fmt.Errorf("unexpected message path %q from speech service", path)
			}

		case websocket.BinaryMessage:
			audio, err := parseBinaryMessage(data)
			if err != nil {
				return err
			}
			if len(audio) == 0 {
				continue
			}
			audioBytes += len(audio)
			if err := send(ctx, chunks, repositories.SpeechChunk{Type: repositories.ChunkTypeAudio, Data: audio}); err != nil {
				return err
			}
		}
	}
}

func (e *EdgeTTS) connectURL() (string, error) {
	u, err := url.Parse(e.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid speech endpoint %q: %w", e.endpoint, err)
	}

	q := u.Query()
	q.Set("TrustedClientToken", trustedClientToken)
	q.Set("ConnectionId", connectionID())
	q.Set("Sec-MS-GEC", secMSGEC(e.now()))
	q.Set("Sec-MS-GEC-Version", secMSGECVersion)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func connectionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
