package diagram

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

var _ diagramRepo = &diagramRepoMock{}

type diagramRepoMock struct {
	ListDiagramsFunc          func(ctx context.Context) ([]*domain.Diagram, error)
	GetDiagramFunc            func(ctx context.Context, diagramID uuid.UUID) (*domain.Diagram, error)
	CreateDiagramFunc         func(ctx context.Context, d *domain.Diagram) (*domain.Diagram, error)
	UpdateDiagramFunc         func(ctx context.Context, diagramID uuid.UUID, title, imageURL string) (*domain.Diagram, error)
	DeleteDiagramFunc         func(ctx context.Context, diagramID uuid.UUID) error
	ListLabelsFunc            func(ctx context.Context, diagramID uuid.UUID) ([]*domain.Label, error)
	CreateLabelFunc           func(ctx context.Context, l *domain.Label) (*domain.Label, error)
	UpdateLabelFunc           func(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) (*domain.Label, error)
	DeleteLabelFunc           func(ctx context.Context, labelID uuid.UUID) error
	DeleteLabelsByDiagramFunc func(ctx context.Context, diagramID uuid.UUID) (int, error)

	calls struct {
		DeleteDiagram         []uuid.UUID
		DeleteLabelsByDiagram []uuid.UUID
	}
	mu sync.Mutex
}

func (m *diagramRepoMock) ListDiagrams(ctx context.Context) ([]*domain.Diagram, error) {
	return m.ListDiagramsFunc(ctx)
}

func (m *diagramRepoMock) GetDiagram(ctx context.Context, diagramID uuid.UUID) (*domain.Diagram, error) {
	return m.GetDiagramFunc(ctx, diagramID)
}

func (m *diagramRepoMock) CreateDiagram(ctx context.Context, d *domain.Diagram) (*domain.Diagram, error) {
	return m.CreateDiagramFunc(ctx, d)
}

func (m *diagramRepoMock) UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) (*domain.Diagram, error) {
	return m.UpdateDiagramFunc(ctx, diagramID, title, imageURL)
}

func (m *diagramRepoMock) DeleteDiagram(ctx context.Context, diagramID uuid.UUID) error {
	m.mu.Lock()
	m.calls.DeleteDiagram = append(m.calls.DeleteDiagram, diagramID)
	m.mu.Unlock()
	return m.DeleteDiagramFunc(ctx, diagramID)
}

func (m *diagramRepoMock) ListLabels(ctx context.Context, diagramID uuid.UUID) ([]*domain.Label, error) {
	return m.ListLabelsFunc(ctx, diagramID)
}

func (m *diagramRepoMock) CreateLabel(ctx context.Context, l *domain.Label) (*domain.Label, error) {
	return m.CreateLabelFunc(ctx, l)
}

func (m *diagramRepoMock) UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) (*domain.Label, error) {
	return m.UpdateLabelFunc(ctx, labelID, number, x, y, answer)
}

func (m *diagramRepoMock) DeleteLabel(ctx context.Context, labelID uuid.UUID) error {
	return m.DeleteLabelFunc(ctx, labelID)
}

func (m *diagramRepoMock) DeleteLabelsByDiagram(ctx context.Context, diagramID uuid.UUID) (int, error) {
	m.mu.Lock()
	m.calls.DeleteLabelsByDiagram = append(m.calls.DeleteLabelsByDiagram, diagramID)
	m.mu.Unlock()
	return m.DeleteLabelsByDiagramFunc(ctx, diagramID)
}

func (m *diagramRepoMock) DeleteDiagramCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteDiagram
}

func (m *diagramRepoMock) DeleteLabelsByDiagramCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteLabelsByDiagram
}
