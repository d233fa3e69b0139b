// Package events implements the recurring-event store: an in-memory
// collection of annual calendar anchors persisted to the local device
// store. The full collection is serialized under a single key and
// rewritten on every mutation; the write completes before the action
// returns.
//
// Error policy: flag and continue, like the jobs store. A failed write
// records a store-level error message and leaves memory untouched.
package events

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// CollectionKey is the local-store key holding the serialized event list.
const CollectionKey = "events"

// UpcomingLimit caps the upcoming-events view.
const UpcomingLimit = 5

type kvStore interface {
	Get(key string, dst any) error
	Put(key string, v any) error
}

// UpdateParams carries partial event edits. Nil means "leave as is".
type UpdateParams struct {
	Emoji       *string
	Name        *string
	Anchor      *string
	Description *string
	Recurring   *bool
}

// Store owns the event collection.
type Store struct {
	kv      kvStore
	log     *slog.Logger
	ownerID string

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	events  []*domain.Event
	lastErr string
}

// New creates an events store and loads the persisted collection. A
// missing key means a fresh device: the store starts empty. Any other
// read failure is flagged, also starting empty.
func New(log *slog.Logger, kv kvStore, ownerID string) *Store {
	s := &Store{
		kv:      kv,
		log:     log.With("store", "events"),
		ownerID: ownerID,
		now:     time.Now,
	}

	var records []eventRecord
	if err := kv.Get(CollectionKey, &records); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.lastErr = "load events: " + err.Error()
			s.log.Error("load events failed", slog.String("error", err.Error()))
		}
		return s
	}

	s.events = make([]*domain.Event, 0, len(records))
	for _, rec := range records {
		e := rec.toDomain()
		s.events = append(s.events, &e)
	}

	return s
}

// Events returns a snapshot of the collection.
func (s *Store) Events() []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Add creates an event. The anchor is validated here, at the entity
// creation boundary, so malformed month-days never enter the collection.
func (s *Store) Add(emoji, name, anchor string, description *string, recurring bool) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	if name == "" {
		s.lastErr = "name is required"
		return nil
	}
	if _, _, err := domain.ParseAnchor(anchor); err != nil {
		s.lastErr = "invalid date: " + err.Error()
		return nil
	}

	now := s.now()
	e := &domain.Event{
		ID:          uuid.New(),
		Emoji:       emoji,
		Name:        name,
		Anchor:      anchor,
		Description: description,
		Recurring:   recurring,
		OwnerID:     s.ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := append(append([]*domain.Event{}, s.events...), e)
	if !s.persist(next) {
		return nil
	}

	s.events = next
	return e
}

// Update applies a partial edit to an event.
func (s *Store) Update(eventID uuid.UUID, params UpdateParams) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	idx := s.indexOf(eventID)
	if idx < 0 {
		s.lastErr = "event not found"
		return nil
	}

	draft := *s.events[idx]
	if params.Emoji != nil {
		draft.Emoji = *params.Emoji
	}
	if params.Name != nil {
		draft.Name = *params.Name
	}
	if params.Anchor != nil {
		if _, _, err := domain.ParseAnchor(*params.Anchor); err != nil {
			s.lastErr = "invalid date: " + err.Error()
			return nil
		}
		draft.Anchor = *params.Anchor
	}
	if params.Description != nil {
		draft.Description = params.Description
	}
	if params.Recurring != nil {
		draft.Recurring = *params.Recurring
	}
	draft.UpdatedAt = s.now()

	next := make([]*domain.Event, len(s.events))
	copy(next, s.events)
	next[idx] = &draft

	if !s.persist(next) {
		return nil
	}

	s.events = next
	return &draft
}

// Delete removes an event.
func (s *Store) Delete(eventID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	idx := s.indexOf(eventID)
	if idx < 0 {
		s.lastErr = "event not found"
		return false
	}

	next := make([]*domain.Event, 0, len(s.events)-1)
	next = append(next, s.events[:idx]...)
	next = append(next, s.events[idx+1:]...)

	if !s.persist(next) {
		return false
	}

	s.events = next
	return true
}

// Upcoming returns at most UpcomingLimit events sorted ascending by next
// occurrence. The sort key is the date-only resolution (midnight cutoff),
// not the 23:59:59 countdown cutoff — the two views are intentionally
// computed differently.
func (s *Store) Upcoming(now time.Time) []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Event, len(s.events))
	copy(out, s.events)

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].NextOccurrenceDate(now), out[j].NextOccurrenceDate(now)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		// Same anchor date: order by name so the result is deterministic.
		return out[i].Name < out[j].Name
	})

	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

// TimeUntil returns the countdown string for an event relative to now.
// The second return is false when the event does not exist.
func (s *Store) TimeUntil(eventID uuid.UUID, now time.Time) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(eventID)
	if idx < 0 {
		return "", false
	}

	e := s.events[idx]
	return domain.Countdown(e.NextOccurrence(now).Sub(now)), true
}

// LastErr returns the message from the most recent failed action, or ""
// if the last action succeeded.
func (s *Store) LastErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// indexOf returns the position of the event in the collection, or -1.
// Caller holds mu.
func (s *Store) indexOf(eventID uuid.UUID) int {
	for i, e := range s.events {
		if e.ID == eventID {
			return i
		}
	}
	return -1
}

// persist writes the candidate collection to the local store. On failure
// the store error is flagged and the caller must not commit the
// candidate to memory. Caller holds mu.
func (s *Store) persist(events []*domain.Event) bool {
	records := make([]eventRecord, len(events))
	for i, e := range events {
		records[i] = recordFromDomain(*e)
	}

	if err := s.kv.Put(CollectionKey, records); err != nil {
		s.lastErr = "save events: " + err.Error()
		s.log.Error("save events failed", slog.String("error", err.Error()))
		return false
	}
	return true
}
