// Package synth defines the streaming speech-synthesis collaborator
// interface consumed by the pipeline, plus a mock implementation for
// tests and offline development.
package synth

import "context"

// FrameType classifies a frame in a synthesis stream.
type FrameType string

const (
	// FrameAudio carries encoded audio bytes.
	FrameAudio FrameType = "audio"
	// FrameWordBoundary is a word timing event; no audio payload.
	FrameWordBoundary FrameType = "word.boundary"
	// FrameSentenceBoundary is a sentence timing event; no audio payload.
	FrameSentenceBoundary FrameType = "sentence.boundary"
)

// Frame is one event in a synthesis stream. Only FrameAudio frames carry
// Data; boundary frames are metadata and are discarded by the pipeline.
type Frame struct {
	Type FrameType
	Data []byte
}

// Stream delivers synthesis frames for a single request. The frames
// channel is closed when the stream ends; Err reports the terminal error,
// if any, once the channel is closed.
type Stream interface {
	Frames() <-chan Frame
	Err() error
	Close() error
}

// Streamer is the speech-synthesis collaborator: one call synthesizes one
// text segment with the given voice and tone specs. rateSpec is a signed
// percentage string ("-20%", "+0%"); pitchSpec a signed Hz string
// ("+150Hz").
type Streamer interface {
	Stream(ctx context.Context, text, voiceID, rateSpec, pitchSpec string) (Stream, error)
}
