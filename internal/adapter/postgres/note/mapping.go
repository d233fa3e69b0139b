package note

import (
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// noteRow mirrors the notes table. Column names are snake_case on the
// wire; the domain entity uses Go naming. The two mapping functions below
// are the single place this translation happens, in both directions.
//
//	id         <-> ID
//	title      <-> Title
//	content    <-> Content
//	color      <-> Color
//	tags       <-> Tags
//	is_pinned  <-> Pinned
//	created_at <-> CreatedAt
//	updated_at <-> UpdatedAt
type noteRow struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Color     string
	Tags      []string
	IsPinned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// toDomain converts a stored row into a domain.Note.
func (r noteRow) toDomain() domain.Note {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Color:     r.Color,
		Tags:      tags,
		Pinned:    r.IsPinned,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// rowFromDomain converts a domain.Note into its stored representation.
func rowFromDomain(n domain.Note) noteRow {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}

	return noteRow{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Color:     n.Color,
		Tags:      tags,
		IsPinned:  n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
