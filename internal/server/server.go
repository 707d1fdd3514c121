// Package server exposes the browser studio: the embedded web UI and the
// JSON API that runs the translate/chunk/synthesize pipeline.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzhttp"

	"github.com/voicestudio/voicestudio/internal/pipeline"
	"github.com/voicestudio/voicestudio/internal/translate"
)

//go:embed static
var staticFS embed.FS

// SampleSentence is synthesized for voice previews.
const SampleSentence = "I wake up early, review my goals, and build tiny habits that compound over time."

// Config is the server runtime configuration, overridable from the
// environment.
type Config struct {
	Addr         string        `env:"VOICESTUDIO_ADDR" envDefault:":8600"`
	ReadTimeout  time.Duration `env:"VOICESTUDIO_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"VOICESTUDIO_WRITE_TIMEOUT" envDefault:"10m"`
	MaxTextBytes int64         `env:"VOICESTUDIO_MAX_TEXT_BYTES" envDefault:"1048576"`
}

// Server wires the HTTP surface to the pipeline collaborators.
type Server struct {
	config     Config
	orch       *pipeline.Orchestrator
	translator *translate.Adapter
	store      *Store
	logger     *log.Logger

	httpServer *http.Server
}

// New creates a server. The orchestrator and translator are required;
// the artifact store starts empty.
func New(config Config, orch *pipeline.Orchestrator, translator *translate.Adapter, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		config:     config,
		orch:       orch,
		translator: translator,
		store:      NewStore(),
		logger:     logger,
	}

	mux := http.NewServeMux()
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed is part of the binary; a bad sub path is a build
		// defect, not a runtime condition.
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))
	mux.HandleFunc("GET /api/voices", s.handleVoices)
	mux.HandleFunc("POST /api/synthesize", s.handleSynthesize)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("GET /api/audio/current", s.handleAudio)

	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      gzhttp.GzipHandler(mux),
		ReadTimeout:  config.ReadTimeout,
		// Generations block until the last chunk streams back, so the
		// write timeout is generous.
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe runs the server until it fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("studio listening", "addr", s.config.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
