package voice

import (
	"errors"
	"testing"
)

func TestProfileSpecs(t *testing.T) {
	tests := []struct {
		name      string
		rate      int
		pitch     int
		wantRate  string
		wantPitch string
	}{
		{name: "neutral", rate: 0, pitch: 0, wantRate: "+0%", wantPitch: "+0Hz"},
		{name: "slower and higher", rate: -20, pitch: 150, wantRate: "-20%", wantPitch: "+150Hz"},
		{name: "faster and lower", rate: 35, pitch: -300, wantRate: "+35%", wantPitch: "-300Hz"},
		{name: "bounds", rate: 50, pitch: 300, wantRate: "+50%", wantPitch: "+300Hz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile("en-US-AriaNeural", tt.rate, tt.pitch)
			if err != nil {
				t.Fatalf("NewProfile failed: %v", err)
			}
			if got := p.RateSpec(); got != tt.wantRate {
				t.Errorf("RateSpec: got %q, want %q", got, tt.wantRate)
			}
			if got := p.PitchSpec(); got != tt.wantPitch {
				t.Errorf("PitchSpec: got %q, want %q", got, tt.wantPitch)
			}
		})
	}
}

func TestNewProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		rate    int
		pitch   int
		wantErr error
	}{
		{name: "blank id", id: "  ", rate: 0, pitch: 0, wantErr: ErrEmptyVoiceID},
		{name: "rate too low", id: "v", rate: -51, pitch: 0, wantErr: ErrRateOutOfRange},
		{name: "rate too high", id: "v", rate: 51, pitch: 0, wantErr: ErrRateOutOfRange},
		{name: "pitch too low", id: "v", rate: 0, pitch: -301, wantErr: ErrPitchOutOfRange},
		{name: "pitch too high", id: "v", rate: 0, pitch: 301, wantErr: ErrPitchOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.id, tt.rate, tt.pitch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewProfileTrimsID(t *testing.T) {
	p, err := NewProfile("  en-GB-LibbyNeural ", 0, 0)
	if err != nil {
		t.Fatalf("NewProfile failed: %v", err)
	}
	if p.ID != "en-GB-LibbyNeural" {
		t.Errorf("ID not trimmed: %q", p.ID)
	}
}

func TestLookup(t *testing.T) {
	p := Lookup("Guy · US (neutral, baritone — male)")
	if p.ID != "en-US-GuyNeural" {
		t.Errorf("Lookup returned wrong preset: %v", p)
	}

	// Unknown labels fall back to the default preset.
	if got := Lookup("nope"); got.ID != DefaultPreset().ID {
		t.Errorf("Expected default preset for unknown label, got %v", got)
	}
}

func TestSearch(t *testing.T) {
	all := Search("")
	if len(all) != len(Presets) {
		t.Fatalf("Empty query should return full catalog, got %d entries", len(all))
	}

	got := Search("libby")
	if len(got) == 0 {
		t.Fatal("Expected at least one match for 'libby'")
	}
	if got[0].ID != "en-GB-LibbyNeural" {
		t.Errorf("Best match: got %s, want en-GB-LibbyNeural", got[0].ID)
	}

	if got := Search("zzzzqqqq"); len(got) != 0 {
		t.Errorf("Expected no matches, got %v", got)
	}
}
