package note

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// List returns notes matching the filter, pinned first and newest-created
// first within each group.
func (s *Service) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	notes, err := s.notes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns a single note by ID.
func (s *Service) Get(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	n, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Create validates the input and persists a new note.
func (s *Service) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := s.notes.Create(ctx, &domain.Note{
		ID:      uuid.New(),
		Title:   input.Title,
		Content: input.Content,
		Color:   input.Color,
		Tags:    tags,
		Pinned:  input.Pinned,
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.log.InfoContext(ctx, "note created",
		slog.String("note_id", created.ID.String()),
		slog.Bool("pinned", created.Pinned),
	)

	return created, nil
}

// Update validates the input and applies a partial update.
func (s *Service) Update(ctx context.Context, noteID uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.notes.Update(ctx, noteID, domain.NoteUpdateParams{
		Title:   input.Title,
		Content: input.Content,
		Color:   input.Color,
		Tags:    input.Tags,
		Pinned:  input.Pinned,
	})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return updated, nil
}

// Delete removes a note immediately. Confirmation is the UI's concern.
func (s *Service) Delete(ctx context.Context, noteID uuid.UUID) error {
	if err := s.notes.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted", slog.String("note_id", noteID.String()))
	return nil
}
