package styleai

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the identity slice persisted between runs: the bearer token plus
// the user's display name and email.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionStore owns the auth token for the process lifetime. It is hydrated
// once at startup, read by every authenticated call, and cleared only by an
// explicit logout. With a directory it persists to <dir>/session.json;
// without one it is purely in-memory (useful for tests).
type SessionStore struct {
	mu   sync.RWMutex
	path string // "" -> in-memory only
	cur  Session
}

// NewSessionStore builds a store rooted at dir. Pass "" for an in-memory
// store.
func NewSessionStore(dir string) *SessionStore {
	s := &SessionStore{}
	if dir != "" {
		s.path = filepath.Join(dir, "session.json")
	}
	return s
}

// DefaultSessionDir returns the per-user config directory for persisted
// sessions.
func DefaultSessionDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "styleai"), nil
}

// Hydrate loads the persisted session, if any. A missing file is not an
// error: the store simply starts signed out.
func (s *SessionStore) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return err
	}
	s.cur = sess
	return nil
}

// Save replaces the current session and persists it.
func (s *SessionStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = sess
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear wipes the session in memory and on disk. It must complete before any
// dependent navigation.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Current returns the session and whether a token is present.
func (s *SessionStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.cur.Token != ""
}
