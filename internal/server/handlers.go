package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/voicestudio/voicestudio/internal/pipeline"
	"github.com/voicestudio/voicestudio/internal/voice"
)

// synthesizeRequest is the POST /api/synthesize body.
type synthesizeRequest struct {
	Text        string `json:"text"`
	VoiceLabel  string `json:"voiceLabel"`
	CustomVoice string `json:"customVoice"`
	Rate        int    `json:"rate"`
	Pitch       int    `json:"pitch"`
	Translate   bool   `json:"translate"`
	Name        string `json:"name"`
}

// synthesizeResponse is the POST /api/synthesize result metadata. The
// audio itself is fetched from /api/audio/current.
type synthesizeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bytes    int    `json:"bytes"`
	Size     string `json:"size"`
	Segments int    `json:"segments"`
	Voice    string `json:"voice"`
}

type previewRequest struct {
	VoiceLabel  string `json:"voiceLabel"`
	CustomVoice string `json:"customVoice"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, voice.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeBody(w, r, s.config.MaxTextBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "paste some text first")
		return
	}

	profile, err := resolveProfile(req.VoiceLabel, req.CustomVoice, req.Rate, req.Pitch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := req.Text
	if req.Translate {
		text = s.translator.ToEnglish(r.Context(), text)
	}

	start := time.Now()
	res, err := s.orch.Synthesize(r.Context(), text, profile)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "paste some text first")
			return
		}
		s.logger.Error("synthesis failed", "err", err, "voice", profile.ID)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("synthesis failed: %v", err))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("diary_%d", time.Now().Unix())
	}

	artifact := s.store.Replace(name, profile.ID, res.Audio, res.Segments)
	s.logger.Info("synthesis complete",
		"id", artifact.ID,
		"voice", profile.ID,
		"segments", res.Segments,
		"size", humanize.Bytes(uint64(len(res.Audio))),
		"duration", time.Since(start).Round(time.Millisecond))

	writeJSON(w, http.StatusOK, synthesizeResponse{
		ID:       artifact.ID,
		Name:     artifact.Name,
		Bytes:    len(artifact.Audio),
		Size:     humanize.Bytes(uint64(len(artifact.Audio))),
		Segments: artifact.Segments,
		Voice:    artifact.Voice,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeBody(w, r, 4096, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := resolveProfile(req.VoiceLabel, req.CustomVoice, 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.orch.Synthesize(r.Context(), SampleSentence, profile)
	if err != nil {
		s.logger.Error("preview failed", "err", err, "voice", profile.ID)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("preview failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Audio)))
	w.Write(res.Audio) //nolint:errcheck
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.store.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no audio generated yet")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Audio)))
	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.Filename()))
	w.Write(artifact.Audio) //nolint:errcheck
}

// resolveProfile builds the voice profile from a preset label, with a
// non-blank custom identifier always winning.
func resolveProfile(label, custom string, rate, pitch int) (voice.Profile, error) {
	id := voice.Lookup(label).ID
	if strings.TrimSpace(custom) != "" {
		id = custom
	}
	return voice.NewProfile(id, rate, pitch)
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	if limit <= 0 {
		limit = 1 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
