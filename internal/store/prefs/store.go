// Package prefs implements persisted UI preferences (theme, welcome-seen
// flag) over the local device store: loaded once at construction, written
// through on every change. The store is injected as a capability; there
// is no package-level state.
package prefs

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/studybuddy/backend/internal/domain"
)

// Key is the local-store key holding the preferences record.
const Key = "prefs"

// Themes accepted by SetTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type kvStore interface {
	Get(key string, dst any) error
	Put(key string, v any) error
}

type record struct {
	Theme       string `json:"theme"`
	WelcomeSeen bool   `json:"welcome_seen"`
}

// Store holds UI preferences.
type Store struct {
	kv  kvStore
	log *slog.Logger

	mu      sync.Mutex
	rec     record
	lastErr string
}

// New creates a prefs store and loads persisted preferences. A missing
// key yields defaults (light theme, welcome not seen).
func New(log *slog.Logger, kv kvStore) *Store {
	s := &Store{
		kv:  kv,
		log: log.With("store", "prefs"),
		rec: record{Theme: ThemeLight},
	}

	var rec record
	if err := kv.Get(Key, &rec); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.lastErr = "load prefs: " + err.Error()
			s.log.Error("load prefs failed", slog.String("error", err.Error()))
		}
		return s
	}

	if rec.Theme == "" {
		rec.Theme = ThemeLight
	}
	s.rec = rec
	return s
}

// Theme returns the current theme preference.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Theme
}

// WelcomeSeen reports whether the welcome screen was dismissed.
func (s *Store) WelcomeSeen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.WelcomeSeen
}

// SetTheme switches the theme and writes through.
func (s *Store) SetTheme(theme string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	if theme != ThemeLight && theme != ThemeDark {
		s.lastErr = "unknown theme"
		return false
	}

	draft := s.rec
	draft.Theme = theme
	return s.commit(draft)
}

// MarkWelcomeSeen records the welcome-screen dismissal and writes through.
func (s *Store) MarkWelcomeSeen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	draft := s.rec
	draft.WelcomeSeen = true
	return s.commit(draft)
}

// LastErr returns the message from the most recent failed action, or "".
func (s *Store) LastErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// commit persists the draft and, on success, makes it current.
// Caller holds mu.
func (s *Store) commit(draft record) bool {
	if err := s.kv.Put(Key, draft); err != nil {
		s.lastErr = "save prefs: " + err.Error()
		s.log.Error("save prefs failed", slog.String("error", err.Error()))
		return false
	}
	s.rec = draft
	return true
}
