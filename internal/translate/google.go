package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google calls the free Google translate endpoint (the gtx client used by
// deep-translator and friends). No API key is required.
type Google struct {
	endpoint string
	client   *http.Client
}

// GoogleOption configures a Google translator.
type GoogleOption func(*Google)

// WithEndpoint overrides the service endpoint, mainly for tests.
func WithEndpoint(endpoint string) GoogleOption {
	return func(g *Google) { g.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) { g.client = client }
}

// NewGoogle creates a Google translator.
func NewGoogle(opts ...GoogleOption) *Google {
	g := &Google{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Translate converts text from source to target. Source may be
// SourceAuto; target must be a valid BCP 47 language tag.
func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = SourceAuto
	}
	if _, err := language.Parse(target); err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", target, err)
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("dt", "t")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned HTTP %d", resp.StatusCode)
	}

	translated, err := decodeResponse(resp.Body)
	if err != nil {
		return "", err
	}
	return translated, nil
}

// decodeResponse parses the nested-array payload the gtx endpoint
// returns: the first element is a list of [translated, original, ...]
// segments which are concatenated in order.
func decodeResponse(r io.Reader) (string, error) {
	var outer []json.RawMessage
	if err := json.NewDecoder(r).Decode(&outer); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", fmt.Errorf("decode translate segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("translate response carried no text")
	}
	return b.String(), nil
}
