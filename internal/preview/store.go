package preview

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"voicenote/internal/domain"
)

// PathPrefix is where clip previews are mounted on the app's asset server.
const PathPrefix = "/clips/"

// Store holds finished clips behind transient, revocable preview URLs so
// the webview can play a recording back without any network round-trip.
// Publish hands out a fresh token per clip; Revoke drops the bytes and is
// idempotent.
type Store struct {
	mu    sync.Mutex
	clips map[string]*domain.Clip
}

func NewStore() *Store {
	return &Store{clips: make(map[string]*domain.Clip)}
}

func (s *Store) Publish(clip *domain.Clip) (string, error) {
	if clip == nil || len(clip.Data) == 0 {
		return "", errors.New("cannot publish an empty clip")
	}
	token := uuid.NewString()

	s.mu.Lock()
	s.clips[token] = clip
	s.mu.Unlock()

	return PathPrefix + token, nil
}

func (s *Store) Revoke(url string) {
	if !strings.HasPrefix(url, PathPrefix) {
		return
	}
	token := strings.TrimPrefix(url, PathPrefix)
	s.mu.Lock()
	delete(s.clips, token)
	s.mu.Unlock()
}

// Len reports how many previews are currently live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clips)
}

// ServeHTTP serves clip bytes for playback. Mounted as the asset-server
// fallback handler, so anything outside PathPrefix is a 404.
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, PathPrefix) {
		http.NotFound(w, r)
		return
	}
	token := strings.TrimPrefix(r.URL.Path, PathPrefix)

	s.mu.Lock()
	clip, ok := s.clips[token]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	if clip.MimeType != "" {
		w.Header().Set("Content-Type", clip.MimeType)
	}
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(clip.Data))
}
