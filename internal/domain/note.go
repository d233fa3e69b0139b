package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user note with a color tag and free-form string tags.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Color     string
	Tags      []string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteUpdateParams carries partial note updates. Nil means "leave as is".
type NoteUpdateParams struct {
	Title   *string
	Content *string
	Color   *string
	Tags    *[]string
	Pinned  *bool
}
