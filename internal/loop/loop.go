// Package loop implements the A/B loop-repeat playback state machine
// used for pronunciation practice. It is driven by periodic position
// samples and issues player commands through a narrow interface, so it is
// independent of any particular UI runtime.
package loop

import (
	"errors"
	"fmt"
	"sync"
)

// Repeat count bounds for one loop run.
const (
	DefaultRepeats = 5
	MinRepeats     = 1
	MaxRepeats     = 50
)

// ErrInvalidRange rejects starting a loop whose B endpoint is not
// strictly after A.
var ErrInvalidRange = errors.New("loop end must be after loop start")

// State is the controller state.
type State int

const (
	// StateIdle means no loop is running.
	StateIdle State = iota
	// StateLooping means playback is being cycled between A and B.
	StateLooping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLooping:
		return "looping"
	default:
		return "unknown"
	}
}

// Player is the playback surface the controller drives. Seek positions
// are seconds from the start of the audio.
type Player interface {
	Seek(position float64)
	Play()
	Pause()
}

// Controller cycles playback between two marked positions a fixed number
// of times. Marks may be adjusted in any state without affecting
// playback; only Start, Stop and the B-crossing transitions change state.
type Controller struct {
	mu sync.Mutex

	player Player

	state     State
	a, b      float64
	remaining int
}

// New creates an idle controller over player.
func New(player Player) *Controller {
	return &Controller{player: player}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Range returns the marked A/B endpoints in seconds.
func (c *Controller) Range() (a, b float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.a, c.b
}

// Remaining returns how many traversals are left in the running loop.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// SetA marks the loop start. Allowed in any state; never alters playback.
func (c *Controller) SetA(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.a = position
}

// SetB marks the loop end. Allowed in any state; never alters playback.
func (c *Controller) SetB(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.b = position
}

// Start begins looping: seeks to A, starts playback, and arms the repeat
// counter (clamped to [MinRepeats, MaxRepeats]; non-positive counts fall
// back to DefaultRepeats). Starting with B ≤ A is a rejected no-op.
func (c *Controller) Start(repeats int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.b <= c.a {
		return fmt.Errorf("%w: A=%.2fs B=%.2fs", ErrInvalidRange, c.a, c.b)
	}

	if repeats <= 0 {
		repeats = DefaultRepeats
	}
	if repeats < MinRepeats {
		repeats = MinRepeats
	}
	if repeats > MaxRepeats {
		repeats = MaxRepeats
	}

	c.remaining = repeats
	c.state = StateLooping
	c.player.Seek(c.a)
	c.player.Play()
	return nil
}

// Stop pauses playback in place and returns to idle. Stopping an idle
// controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLooping {
		return
	}
	c.state = StateIdle
	c.remaining = 0
	c.player.Pause()
}

// Tick feeds one playback position sample. When the position reaches B
// during a loop, one traversal completes: either playback seeks back to A
// or, when no repeats remain, pauses and the controller goes idle.
func (c *Controller) Tick(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLooping || position < c.b {
		return
	}

	c.remaining--
	if c.remaining > 0 {
		c.player.Seek(c.a)
		return
	}

	c.state = StateIdle
	c.remaining = 0
	c.player.Pause()
}
