package server

import (
	"fmt"
	"sync"
	"time"
)

// Artifact is one generated audio result. It is immutable once stored.
type Artifact struct {
	ID        string
	Name      string
	Audio     []byte
	Segments  int
	Voice     string
	CreatedAt time.Time
}

// Filename returns the download file name.
func (a *Artifact) Filename() string {
	return a.Name + ".mp3"
}

// Store holds the session's single most-recent artifact. A successful
// generation replaces the previous artifact wholesale; failed runs leave
// the store untouched. There is no partial mutation.
type Store struct {
	mu      sync.RWMutex
	current *Artifact
	serial  uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs audio as the new current artifact and returns it.
func (s *Store) Replace(name, voice string, audio []byte, segments int) *Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.serial++
	s.current = &Artifact{
		ID:        fmt.Sprintf("gen-%d", s.serial),
		Name:      name,
		Audio:     audio,
		Segments:  segments,
		Voice:     voice,
		CreatedAt: time.Now(),
	}
	return s.current
}

// Current returns the most recent artifact, if any.
func (s *Store) Current() (*Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}
