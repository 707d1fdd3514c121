// Package chunk splits long input text into segments small enough for a
// single synthesis request, preferring sentence boundaries.
package chunk

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the per-segment character budget applied when the
// caller passes a non-positive limit.
const DefaultMaxChars = 2000

// sentenceEnd matches a sentence-final punctuation run followed by
// whitespace. The whitespace is consumed by the split.
var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// Split breaks text into ordered segments of at most maxChars characters.
//
// The trimmed input is returned as a single segment when it already fits.
// Otherwise the text is cut into sentence candidates at `.`, `!` or `?`
// followed by whitespace, and sentences are greedily packed into segments:
// a sentence joins the current segment while the combined length, plus the
// single joining space, stays within the budget. A lone sentence longer
// than maxChars becomes its own oversized segment; splitting mid-sentence
// is never attempted.
//
// Split is a pure function: same input, same segments.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	// The budget counts characters, not bytes, so multibyte scripts get
	// the full segment size.
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	sentences := splitSentences(text)

	var segments []string
	var buf string
	for _, s := range sentences {
		if utf8.RuneCountInString(buf)+utf8.RuneCountInString(s)+1 <= maxChars {
			buf = strings.TrimSpace(buf + " " + s)
			continue
		}
		if buf != "" {
			segments = append(segments, buf)
		}
		buf = s
	}
	if buf != "" {
		segments = append(segments, buf)
	}

	return segments
}

// splitSentences cuts text at sentence-final punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, m := range sentenceEnd.FindAllStringSubmatchIndex(text, -1) {
		// m[3] is the end of the punctuation group; the matched
		// whitespace run after it is dropped.
		end := m[3]
		s := strings.TrimSpace(text[last:end])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = m[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
