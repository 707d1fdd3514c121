// Package voice defines voice profiles and the preset catalog used for
// speech synthesis.
package voice

import (
	"errors"
	"fmt"
	"strings"
)

// Tone parameter bounds accepted by the synthesis service.
const (
	MinRate  = -50 // percent
	MaxRate  = 50
	MinPitch = -300 // Hz
	MaxPitch = 300
)

var (
	// ErrRateOutOfRange is returned for rates outside [MinRate, MaxRate].
	ErrRateOutOfRange = errors.New("rate out of range")

	// ErrPitchOutOfRange is returned for pitches outside [MinPitch, MaxPitch].
	ErrPitchOutOfRange = errors.New("pitch out of range")

	// ErrEmptyVoiceID is returned when a profile has no voice identifier.
	ErrEmptyVoiceID = errors.New("empty voice id")
)

// Profile is the immutable (identifier, rate, pitch) triple for one
// synthesis run. Rate is a signed percentage, Pitch a signed Hz offset.
type Profile struct {
	ID    string
	Rate  int
	Pitch int
}

// NewProfile builds a validated profile. The id is trimmed; rate and
// pitch must be inside the service bounds.
func NewProfile(id string, rate, pitch int) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrEmptyVoiceID
	}
	if rate < MinRate || rate > MaxRate {
		return Profile{}, fmt.Errorf("%w: %d%% (allowed %d..%d)", ErrRateOutOfRange, rate, MinRate, MaxRate)
	}
	if pitch < MinPitch || pitch > MaxPitch {
		return Profile{}, fmt.Errorf("%w: %dHz (allowed %d..%d)", ErrPitchOutOfRange, pitch, MinPitch, MaxPitch)
	}
	return Profile{ID: id, Rate: rate, Pitch: pitch}, nil
}

// RateSpec formats the rate as the wire spec string, e.g. "-20%" or "+0%".
func (p Profile) RateSpec() string {
	return fmt.Sprintf("%+d%%", p.Rate)
}

// PitchSpec formats the pitch as the wire spec string, e.g. "+150Hz".
func (p Profile) PitchSpec() string {
	return fmt.Sprintf("%+dHz", p.Pitch)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s rate=%s pitch=%s", p.ID, p.RateSpec(), p.PitchSpec())
}
