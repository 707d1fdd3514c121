package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sl"); got != "auto" {
			t.Errorf("sl: got %q, want auto", got)
		}
		if got := r.URL.Query().Get("tl"); got != "en" {
			t.Errorf("tl: got %q, want en", got)
		}
		if got := r.URL.Query().Get("q"); got != "bonjour le monde" {
			t.Errorf("q: got %q", got)
		}
		// The gtx payload splits long input into segments.
		w.Write([]byte(`[[["hello ","bonjour ",null,null],["world","le monde",null,null]],null,"fr"]`)) //nolint:errcheck
	}))
	defer srv.Close()

	g := NewGoogle(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	got, err := g.Translate(context.Background(), "bonjour le monde", SourceAuto, TargetEnglish)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Translate: got %q, want %q", got, "hello world")
	}
}

func TestGoogleTranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGoogle(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	if _, err := g.Translate(context.Background(), "text", SourceAuto, TargetEnglish); err == nil {
		t.Fatal("Expected error for HTTP 429")
	}
}

func TestGoogleTranslateMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	g := NewGoogle(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	if _, err := g.Translate(context.Background(), "text", SourceAuto, TargetEnglish); err == nil {
		t.Fatal("Expected error for malformed payload")
	}
}

func TestGoogleTranslateInvalidTarget(t *testing.T) {
	g := NewGoogle()
	_, err := g.Translate(context.Background(), "text", SourceAuto, "not a tag!!")
	if err == nil {
		t.Fatal("Expected error for invalid target language")
	}
}

func TestGoogleTranslateContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGoogle(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	_, err := g.Translate(ctx, "text", SourceAuto, TargetEnglish)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
