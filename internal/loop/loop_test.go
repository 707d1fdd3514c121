package loop

import (
	"errors"
	"testing"
)

// scriptedPlayer records the commands the controller issues.
type scriptedPlayer struct {
	commands []string
	seeks    []float64
	playing  bool
}

func (p *scriptedPlayer) Seek(position float64) {
	p.commands = append(p.commands, "seek")
	p.seeks = append(p.seeks, position)
}

func (p *scriptedPlayer) Play() {
	p.commands = append(p.commands, "play")
	p.playing = true
}

func (p *scriptedPlayer) Pause() {
	p.commands = append(p.commands, "pause")
	p.playing = false
}

func TestStartValidRange(t *testing.T) {
	player := &scriptedPlayer{}
	c := New(player)
	c.SetA(5)
	c.SetB(10)

	if err := c.Start(3); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if c.State() != StateLooping {
		t.Errorf("State: got %v, want looping", c.State())
	}
	if c.Remaining() != 3 {
		t.Errorf("Remaining: got %d, want 3", c.Remaining())
	}
	if len(player.seeks) != 1 || player.seeks[0] != 5 {
		t.Errorf("Expected seek to A=5, got %v", player.seeks)
	}
	if !player.playing {
		t.Error("Expected playback to start")
	}
}

func TestStartInvalidRange(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{name: "B before A", a: 10, b: 5},
		{name: "B equals A", a: 7, b: 7},
		{name: "unset marks", a: 0, b: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &scriptedPlayer{}
			c := New(player)
			c.SetA(tt.a)
			c.SetB(tt.b)

			err := c.Start(3)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("Expected ErrInvalidRange, got %v", err)
			}

			// Rejected start is a complete no-op.
			if c.State() != StateIdle {
				t.Errorf("State changed on rejected start: %v", c.State())
			}
			if len(player.commands) != 0 {
				t.Errorf("Player touched on rejected start: %v", player.commands)
			}
		})
	}
}

func TestRepeatsClamping(t *testing.T) {
	tests := []struct {
		name    string
		repeats int
		want    int
	}{
		{name: "default on zero", repeats: 0, want: DefaultRepeats},
		{name: "default on negative", repeats: -3, want: DefaultRepeats},
		{name: "clamped to max", repeats: 500, want: MaxRepeats},
		{name: "in range", repeats: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&scriptedPlayer{})
			c.SetA(0)
			c.SetB(1)
			if err := c.Start(tt.repeats); err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			if c.Remaining() != tt.want {
				t.Errorf("Remaining: got %d, want %d", c.Remaining(), tt.want)
			}
		})
	}
}

func TestLoopTraversals(t *testing.T) {
	// A=5s, B=10s, repeats=2: after two traversals the controller goes
	// idle and pauses playback.
	player := &scriptedPlayer{}
	c := New(player)
	c.SetA(5)
	c.SetB(10)

	if err := c.Start(2); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Positions before B do nothing.
	for _, pos := range []float64{5.0, 6.5, 9.9} {
		c.Tick(pos)
	}
	if c.Remaining() != 2 {
		t.Errorf("Remaining changed before B: %d", c.Remaining())
	}

	// First traversal completes: seek back to A, keep playing.
	c.Tick(10.0)
	if c.State() != StateLooping {
		t.Errorf("State after first traversal: %v", c.State())
	}
	if c.Remaining() != 1 {
		t.Errorf("Remaining after first traversal: got %d, want 1", c.Remaining())
	}
	if last := player.seeks[len(player.seeks)-1]; last != 5 {
		t.Errorf("Expected seek back to A=5, got %v", last)
	}
	if !player.playing {
		t.Error("Playback should continue between traversals")
	}

	// Second traversal: done, pause, idle.
	c.Tick(10.2)
	if c.State() != StateIdle {
		t.Errorf("State after final traversal: %v", c.State())
	}
	if player.playing {
		t.Error("Playback should pause when the loop completes")
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining after completion: %d", c.Remaining())
	}
}

func TestStopPausesInPlace(t *testing.T) {
	player := &scriptedPlayer{}
	c := New(player)
	c.SetA(2)
	c.SetB(8)

	if err := c.Start(5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	seeksBefore := len(player.seeks)

	c.Stop()

	if c.State() != StateIdle {
		t.Errorf("State after stop: %v", c.State())
	}
	if player.playing {
		t.Error("Expected playback paused after stop")
	}
	// Stop never repositions playback.
	if len(player.seeks) != seeksBefore {
		t.Errorf("Stop changed position: %v", player.seeks)
	}
}

func TestStopWhenIdle(t *testing.T) {
	player := &scriptedPlayer{}
	c := New(player)

	c.Stop()
	if len(player.commands) != 0 {
		t.Errorf("Idle stop touched the player: %v", player.commands)
	}
}

func TestSetMarksWhileLooping(t *testing.T) {
	player := &scriptedPlayer{}
	c := New(player)
	c.SetA(1)
	c.SetB(4)

	if err := c.Start(3); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	commandsBefore := len(player.commands)

	// Adjusting marks mid-loop affects neither state nor playback.
	c.SetA(2)
	c.SetB(6)

	if c.State() != StateLooping {
		t.Errorf("State after mark change: %v", c.State())
	}
	if len(player.commands) != commandsBefore {
		t.Errorf("Mark change touched the player: %v", player.commands[commandsBefore:])
	}

	a, b := c.Range()
	if a != 2 || b != 6 {
		t.Errorf("Range: got (%v, %v), want (2, 6)", a, b)
	}

	// The next traversal uses the new endpoints.
	c.Tick(5.9)
	if c.Remaining() != 3 {
		t.Error("Tick below new B should not complete a traversal")
	}
	c.Tick(6.0)
	if c.Remaining() != 2 {
		t.Errorf("Remaining after traversal at new B: %d", c.Remaining())
	}
	if last := player.seeks[len(player.seeks)-1]; last != 2 {
		t.Errorf("Expected seek to new A=2, got %v", last)
	}
}

func TestTickWhileIdle(t *testing.T) {
	player := &scriptedPlayer{}
	c := New(player)
	c.SetA(0)
	c.SetB(3)

	c.Tick(5)
	if len(player.commands) != 0 {
		t.Errorf("Idle tick touched the player: %v", player.commands)
	}
}
