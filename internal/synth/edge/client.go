// Package edge implements the streaming websocket client for an
// Edge-compatible neural text-to-speech gateway.
package edge

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/voicestudio/voicestudio/internal/synth"
)

// Config holds gateway client settings.
type Config struct {
	// URL is the websocket endpoint, e.g. "wss://gateway.example/tts/v1".
	URL string

	ConnectTimeout time.Duration
	WriteTimeout   time.Duration

	// RequestsPerSecond throttles per-segment dials so long inputs do
	// not hammer the gateway. Zero disables throttling.
	RequestsPerSecond float64

	Logger *log.Logger
}

// DefaultConfig returns sensible transport defaults.
func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		ConnectTimeout:    10 * time.Second,
		WriteTimeout:      10 * time.Second,
		RequestsPerSecond: 4,
	}
}

// Client synthesizes speech through the gateway. It opens one websocket
// per request, mirroring the service's request-scoped sessions.
type Client struct {
	config  Config
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewClient creates a gateway client.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{config: config, limiter: limiter, logger: logger}, nil
}

// Stream implements synth.Streamer: it submits text with the given voice
// and tone specs and returns the frame stream. The stream fails as a
// whole on any transport or service error; nothing is retried here.
func (c *Client) Stream(ctx context.Context, text, voiceID, rateSpec, pitchSpec string) (synth.Stream, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	conn := newConn(connConfig{
		url:            c.config.URL,
		connectTimeout: c.config.ConnectTimeout,
		writeTimeout:   c.config.WriteTimeout,
	})
	if err := conn.connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to gateway: %w", err)
	}

	cfg := speechConfig{
		Type:         typeSpeechConfig,
		Voice:        voiceID,
		Rate:         rateSpec,
		Pitch:        pitchSpec,
		OutputFormat: outputFormatMP3,
	}
	if err := conn.sendJSON(cfg); err != nil {
		conn.close() //nolint:errcheck
		return nil, fmt.Errorf("send speech config: %w", err)
	}
	if err := conn.sendJSON(textSynthesize{Type: typeTextSynthesize, Text: text}); err != nil {
		conn.close() //nolint:errcheck
		return nil, fmt.Errorf("submit text: %w", err)
	}

	c.logger.Debug("synthesis request submitted",
		"voice", voiceID, "rate", rateSpec, "pitch", pitchSpec, "chars", len(text))

	stream := newAudioStream(conn)
	go c.messageLoop(ctx, conn, stream)
	return stream, nil
}

// messageLoop turns gateway messages into frames until the request
// completes. It is the single producer for the stream.
func (c *Client) messageLoop(ctx context.Context, conn *conn, stream *audioStream) {
	defer conn.close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			stream.finish(ctx.Err())
			return
		case <-stream.quit:
			stream.finish(ErrConnectionClosed)
			return
		case err := <-conn.errChan():
			stream.finish(fmt.Errorf("%w: %v", ErrConnectionClosed, err))
			return
		case data := <-conn.receiveChan():
			done, err := c.handleMessage(data, stream)
			if err != nil {
				stream.finish(err)
				return
			}
			if done {
				stream.finish(nil)
				return
			}
		}
	}
}

// handleMessage dispatches one gateway message. It reports done=true on
// audio.done and a non-nil error on terminal failures.
func (c *Client) handleMessage(data []byte, stream *audioStream) (bool, error) {
	msgType, err := parseType(data)
	if err != nil {
		return false, fmt.Errorf("parse gateway message: %w", err)
	}

	switch msgType {
	case typeAudioDelta:
		var delta audioDelta
		if err := unmarshal(data, &delta); err != nil {
			return false, fmt.Errorf("parse audio.delta: %w", err)
		}
		audio, err := base64.StdEncoding.DecodeString(delta.Audio)
		if err != nil {
			return false, fmt.Errorf("decode audio chunk: %w", err)
		}
		stream.push(synth.Frame{Type: synth.FrameAudio, Data: audio})

	case typeWordBoundary:
		stream.push(synth.Frame{Type: synth.FrameWordBoundary})

	case typeSentenceBoundary:
		stream.push(synth.Frame{Type: synth.FrameSentenceBoundary})

	case typeAudioDone:
		return true, nil

	case typeError:
		var msg errorMessage
		if err := unmarshal(data, &msg); err != nil {
			return false, fmt.Errorf("parse error message: %w", err)
		}
		return false, &ServiceError{Code: msg.Code, Message: msg.Message}

	default:
		c.logger.Debug("ignoring unknown gateway message", "type", msgType)
	}

	return false, nil
}
