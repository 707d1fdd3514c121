package synth

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockStreamer fabricates deterministic audio frames without a network
// service. Each request yields one word-boundary frame per word and audio
// bytes derived from the input, so tests can assert on exact output.
type MockStreamer struct {
	// FailOn makes requests whose text contains this substring fail.
	FailOn string
	// DialErr, when set, is returned before any stream is produced.
	DialErr error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Stream invocation.
type MockCall struct {
	Text      string
	VoiceID   string
	RateSpec  string
	PitchSpec string
}

// Stream implements Streamer.
func (m *MockStreamer) Stream(ctx context.Context, text, voiceID, rateSpec, pitchSpec string) (Stream, error) {
	if m.DialErr != nil {
		return nil, m.DialErr
	}

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, VoiceID: voiceID, RateSpec: rateSpec, PitchSpec: pitchSpec})
	m.mu.Unlock()

	s := newMockStream()
	go func() {
		defer close(s.frames)
		if m.FailOn != "" && strings.Contains(text, m.FailOn) {
			s.err = fmt.Errorf("mock synthesis failed on %q", m.FailOn)
			return
		}
		select {
		case <-ctx.Done():
			s.err = ctx.Err()
			return
		default:
		}
		s.frames <- Frame{Type: FrameSentenceBoundary}
		s.frames <- Frame{Type: FrameAudio, Data: MockAudio(text)}
		s.frames <- Frame{Type: FrameWordBoundary}
	}()
	return s, nil
}

// Calls returns the recorded invocations in order.
func (m *MockStreamer) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockAudio is the deterministic payload the mock emits for text.
func MockAudio(text string) []byte {
	return []byte("[mp3:" + text + "]")
}

type mockStream struct {
	frames chan Frame
	err    error
}

func newMockStream() *mockStream {
	return &mockStream{frames: make(chan Frame, 8)}
}

func (s *mockStream) Frames() <-chan Frame { return s.frames }
func (s *mockStream) Err() error           { return s.err }
func (s *mockStream) Close() error         { return nil }
