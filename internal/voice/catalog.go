package voice

import "github.com/sahilm/fuzzy"

// Preset pairs a display label with a service voice identifier.
type Preset struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// Presets is the fixed voice catalog offered in the UI voice selector.
// A free-text custom identifier always overrides the selection.
var Presets = []Preset{
	{Label: "Aria · US (clear, friendly — female)", ID: "en-US-AriaNeural"},
	{Label: "Guy · US (neutral, baritone — male)", ID: "en-US-GuyNeural"},
	{Label: "Jenny · US (bright, conversational)", ID: "en-US-JennyNeural"},
	{Label: "Libby · UK (articulate RP-ish — f)", ID: "en-GB-LibbyNeural"},
	{Label: "Natasha · AU (warm — female)", ID: "en-AU-NatashaNeural"},
	{Label: "Neerja · IN (exam-neutral — female)", ID: "en-IN-NeerjaNeural"},
}

// DefaultPreset is used when no selection is made.
func DefaultPreset() Preset {
	return Presets[0]
}

// Lookup resolves a display label to its preset. The default preset is
// returned when the label is unknown.
func Lookup(label string) Preset {
	for _, p := range Presets {
		if p.Label == label {
			return p
		}
	}
	return DefaultPreset()
}

// presetSource adapts Presets for fuzzy matching on both label and id.
type presetSource []Preset

func (s presetSource) String(i int) string { return s[i].Label + " " + s[i].ID }
func (s presetSource) Len() int            { return len(s) }

// Search fuzzy-filters the catalog. An empty query returns the full
// catalog in declaration order.
func Search(query string) []Preset {
	if query == "" {
		out := make([]Preset, len(Presets))
		copy(out, Presets)
		return out
	}

	matches := fuzzy.FindFrom(query, presetSource(Presets))
	out := make([]Preset, 0, len(matches))
	for _, m := range matches {
		out = append(out, Presets[m.Index])
	}
	return out
}
