// Package note implements the notes service.
//
// Error policy: propagate. Every repository failure is wrapped with
// context and returned to the caller; there are no sentinel returns and
// no swallowed errors here. Callers must handle the error.
package note

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

const (
	// MaxTags caps the number of tags per note.
	MaxTags = 20
	// MaxTagLength caps a single tag's length in bytes.
	MaxTagLength = 64
)

type noteRepo interface {
	List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error)
	GetByID(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	Delete(ctx context.Context, noteID uuid.UUID) error
}

// Service provides note management operations.
type Service struct {
	notes noteRepo
	log   *slog.Logger
}

// NewService creates a new notes service.
func NewService(log *slog.Logger, notes noteRepo) *Service {
	return &Service{
		notes: notes,
		log:   log.With("service", "note"),
	}
}
