// Package session persists the authenticated identity between CLI runs.
// The session lives in a mode-0600 JSON file next to the config; absence of
// the file (or an unreadable one) simply means logged out.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

const defaultFile = ".shieldhub/session.json"

// Store reads and writes the on-disk session.
// Set/Clear publish events.AuthChanged so any open view can refresh.
type Store struct {
	mu   sync.Mutex
	path string
	bus  *events.Bus
}

// NewStore returns a Store backed by path. An empty path selects
// ~/.shieldhub/session.json.
func NewStore(path string, bus *events.Bus) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, defaultFile)
	}
	return &Store{path: path, bus: bus}, nil
}

// Current returns the stored session. A missing or corrupt file yields an
// empty (logged-out) session, never an error.
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	return s.Current().Token
}

// Set persists sess and announces the auth state change.
func (s *Store) Set(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	s.publish()
	return nil
}

// Clear removes the stored session. Clearing an already-empty store is a
// no-op and publishes nothing.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.read().LoggedIn() {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	s.publish()
	return nil
}

func (s *Store) read() models.Session {
	var sess models.Session
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Session{}
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt session file: treat as logged out rather than failing
		// every command.
		return models.Session{}
	}
	return sess
}

func (s *Store) publish() {
	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.AuthChanged})
	}
}
