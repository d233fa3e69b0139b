package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// eventRecord is the persisted JSON shape of an event. Field names are
// snake_case on disk; the mapping to the domain entity is explicit in
// both directions.
type eventRecord struct {
	ID          uuid.UUID `json:"id"`
	Emoji       string    `json:"emoji"`
	Name        string    `json:"name"`
	Date        string    `json:"date"` // "MM-DD", no year
	Description *string   `json:"description,omitempty"`
	IsRecurring bool      `json:"is_recurring"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r eventRecord) toDomain() domain.Event {
	return domain.Event{
		ID:          r.ID,
		Emoji:       r.Emoji,
		Name:        r.Name,
		Anchor:      r.Date,
		Description: r.Description,
		Recurring:   r.IsRecurring,
		OwnerID:     r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordFromDomain(e domain.Event) eventRecord {
	return eventRecord{
		ID:          e.ID,
		Emoji:       e.Emoji,
		Name:        e.Name,
		Date:        e.Anchor,
		Description: e.Description,
		IsRecurring: e.Recurring,
		UserID:      e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
