// Package pipeline drives text chunking and sequential speech synthesis,
// concatenating per-segment audio into one artifact.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/voicestudio/voicestudio/internal/chunk"
	"github.com/voicestudio/voicestudio/internal/synth"
	"github.com/voicestudio/voicestudio/internal/voice"
)

// ErrEmptyInput is returned when there is nothing to synthesize.
var ErrEmptyInput = errors.New("no text to synthesize")

// Orchestrator synthesizes long text by splitting it into segments and
// invoking the streamer once per segment, strictly in order. Segment k+1
// is not requested until segment k's stream has fully completed; ordering
// correctness is deliberately preferred over parallel throughput.
type Orchestrator struct {
	streamer synth.Streamer
	maxChars int
	logger   *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxChars overrides the per-segment character budget.
func WithMaxChars(n int) Option {
	return func(o *Orchestrator) { o.maxChars = n }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New creates an orchestrator over the given synthesis collaborator.
func New(streamer synth.Streamer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		streamer: streamer,
		maxChars: chunk.DefaultMaxChars,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Result describes a completed synthesis run.
type Result struct {
	Audio    []byte
	Segments int
}

// Synthesize converts text to one audio byte sequence using the given
// voice profile. Any per-segment failure fails the whole run: no partial
// audio is returned and nothing is retried. The output is the pure
// concatenation of per-segment audio frames in chunk order; the streaming
// encoder emits frame-aligned MP3, so the joined bytes stay playable.
func (o *Orchestrator) Synthesize(ctx context.Context, text string, profile voice.Profile) (*Result, error) {
	segments := chunk.Split(text, o.maxChars)
	if len(segments) == 0 {
		return nil, ErrEmptyInput
	}

	rateSpec, pitchSpec := profile.RateSpec(), profile.PitchSpec()
	o.logger.Info("starting synthesis",
		"segments", len(segments), "voice", profile.ID, "rate", rateSpec, "pitch", pitchSpec)

	var out bytes.Buffer
	for i, segment := range segments {
		audio, err := o.synthesizeSegment(ctx, segment, profile.ID, rateSpec, pitchSpec)
		if err != nil {
			return nil, fmt.Errorf("segment %d/%d: %w", i+1, len(segments), err)
		}
		o.logger.Debug("segment synthesized", "segment", i+1, "of", len(segments), "bytes", len(audio))
		out.Write(audio)
	}

	return &Result{Audio: out.Bytes(), Segments: len(segments)}, nil
}

// synthesizeSegment runs one collaborator call to completion, keeping
// only audio-typed frames and discarding boundary metadata.
func (o *Orchestrator) synthesizeSegment(ctx context.Context, text, voiceID, rateSpec, pitchSpec string) ([]byte, error) {
	stream, err := o.streamer.Stream(ctx, text, voiceID, rateSpec, pitchSpec)
	if err != nil {
		return nil, err
	}
	defer stream.Close() //nolint:errcheck

	var buf bytes.Buffer
	for frame := range stream.Frames() {
		if frame.Type != synth.FrameAudio {
			continue
		}
		buf.Write(frame.Data)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
