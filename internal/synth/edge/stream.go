package edge

import (
	"sync"

	"github.com/voicestudio/voicestudio/internal/synth"
)

// audioStream implements synth.Stream over one gateway connection.
// Frames are pushed only by the client's message loop, which also seals
// the stream; Close from the consumer side signals quit and tears down
// the connection, letting the loop wind the stream down.
type audioStream struct {
	frames chan synth.Frame
	quit   chan struct{}

	mu   sync.Mutex
	err  error
	done bool

	closeOnce sync.Once
	conn      *conn
}

func newAudioStream(c *conn) *audioStream {
	return &audioStream{
		frames: make(chan synth.Frame, 64),
		quit:   make(chan struct{}),
		conn:   c,
	}
}

// Frames implements synth.Stream.
func (s *audioStream) Frames() <-chan synth.Frame { return s.frames }

// Err implements synth.Stream. Valid once Frames is closed.
func (s *audioStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close implements synth.Stream. It aborts delivery and releases the
// connection; the message loop then seals the frame channel.
func (s *audioStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		err = s.conn.close()
	})
	return err
}

// push delivers one frame. Producer-side only.
func (s *audioStream) push(f synth.Frame) {
	select {
	case s.frames <- f:
	case <-s.quit:
	}
}

// finish seals the stream with a terminal error (nil on success).
// Producer-side only; the first call wins.
func (s *audioStream) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.err = err
	close(s.frames)
}
