// Package diagram implements the diagram-labeling service.
//
// Error policy: sentinel. Every repository failure is logged and replaced
// by an empty collection, nil, or false. Callers check for the sentinel;
// the log is the only place a failure is distinguishable from "no data".
package diagram

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

type diagramRepo interface {
	ListDiagrams(ctx context.Context) ([]*domain.Diagram, error)
	GetDiagram(ctx context.Context, diagramID uuid.UUID) (*domain.Diagram, error)
	CreateDiagram(ctx context.Context, d *domain.Diagram) (*domain.Diagram, error)
	UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) (*domain.Diagram, error)
	DeleteDiagram(ctx context.Context, diagramID uuid.UUID) error
	ListLabels(ctx context.Context, diagramID uuid.UUID) ([]*domain.Label, error)
	CreateLabel(ctx context.Context, l *domain.Label) (*domain.Label, error)
	UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) (*domain.Label, error)
	DeleteLabel(ctx context.Context, labelID uuid.UUID) error
	DeleteLabelsByDiagram(ctx context.Context, diagramID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides diagram and label operations.
type Service struct {
	diagrams diagramRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new diagram service.
func NewService(log *slog.Logger, diagrams diagramRepo, tx txManager) *Service {
	return &Service{
		diagrams: diagrams,
		tx:       tx,
		log:      log.With("service", "diagram"),
	}
}

// ListDiagrams returns all diagrams, or an empty slice on failure.
func (s *Service) ListDiagrams(ctx context.Context) []*domain.Diagram {
	diagrams, err := s.diagrams.ListDiagrams(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list diagrams failed", slog.String("error", err.Error()))
		return []*domain.Diagram{}
	}
	return diagrams
}

// GetDiagram returns a diagram with its labels, or nil on failure.
func (s *Service) GetDiagram(ctx context.Context, diagramID uuid.UUID) *domain.Diagram {
	d, err := s.diagrams.GetDiagram(ctx, diagramID)
	if err != nil {
		s.log.ErrorContext(ctx, "get diagram failed",
			slog.String("diagram_id", diagramID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return d
}

// CreateDiagram persists a new diagram, or returns nil on failure.
func (s *Service) CreateDiagram(ctx context.Context, title, imageURL string) *domain.Diagram {
	created, err := s.diagrams.CreateDiagram(ctx, &domain.Diagram{
		ID:       uuid.New(),
		Title:    title,
		ImageURL: imageURL,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "create diagram failed", slog.String("error", err.Error()))
		return nil
	}

	s.log.InfoContext(ctx, "diagram created", slog.String("diagram_id", created.ID.String()))
	return created
}

// UpdateDiagram overwrites a diagram's title and image, or returns nil on failure.
func (s *Service) UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) *domain.Diagram {
	updated, err := s.diagrams.UpdateDiagram(ctx, diagramID, title, imageURL)
	if err != nil {
		s.log.ErrorContext(ctx, "update diagram failed",
			slog.String("diagram_id", diagramID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return updated
}

// DeleteDiagram removes a diagram and all its labels in one transaction.
// The labels go first; if that fails the diagram row is left untouched
// and false is returned, so a partial cascade never drops the parent.
func (s *Service) DeleteDiagram(ctx context.Context, diagramID uuid.UUID) bool {
	var deleted int

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.diagrams.DeleteLabelsByDiagram(ctx, diagramID)
		if err != nil {
			return err
		}
		return s.diagrams.DeleteDiagram(ctx, diagramID)
	})
	if err != nil {
		s.log.ErrorContext(ctx, "delete diagram failed",
			slog.String("diagram_id", diagramID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	s.log.InfoContext(ctx, "diagram deleted",
		slog.String("diagram_id", diagramID.String()),
		slog.Int("labels_deleted", deleted),
	)
	return true
}

// CreateLabel adds a label to a diagram, or returns nil on failure.
func (s *Service) CreateLabel(ctx context.Context, diagramID uuid.UUID, number int, x, y float64, answer string) *domain.Label {
	created, err := s.diagrams.CreateLabel(ctx, &domain.Label{
		ID:        uuid.New(),
		DiagramID: diagramID,
		Number:    number,
		X:         x,
		Y:         y,
		Answer:    answer,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "create label failed",
			slog.String("diagram_id", diagramID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return created
}

// UpdateLabel overwrites a label, or returns nil on failure.
func (s *Service) UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) *domain.Label {
	updated, err := s.diagrams.UpdateLabel(ctx, labelID, number, x, y, answer)
	if err != nil {
		s.log.ErrorContext(ctx, "update label failed",
			slog.String("label_id", labelID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return updated
}

// DeleteLabel removes a label, or returns false on failure.
func (s *Service) DeleteLabel(ctx context.Context, labelID uuid.UUID) bool {
	if err := s.diagrams.DeleteLabel(ctx, labelID); err != nil {
		s.log.ErrorContext(ctx, "delete label failed",
			slog.String("label_id", labelID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
