// Package translate wraps an optional machine-translation backend with a
// fallback-to-original-text policy and per-session memoization.
package translate

import (
	"context"
	"errors"
)

// Source language "auto" asks the backend to detect the input language.
const (
	SourceAuto    = "auto"
	TargetEnglish = "en"
)

// ErrUnavailable is returned by the Noop translator. The adapter absorbs
// it like any other backend failure.
var ErrUnavailable = errors.New("translation backend not available")

// Translator converts text between languages. Implementations may fail
// for network or quota reasons; callers above the adapter never see those
// failures.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Noop models the not-configured case. It makes the absence of a backend
// an explicit value instead of a nil check scattered through callers.
type Noop struct{}

// Translate always fails with ErrUnavailable.
func (Noop) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrUnavailable
}
