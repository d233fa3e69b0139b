package note

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	ListFunc    func(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error)
	GetByIDFunc func(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	CreateFunc  func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	UpdateFunc  func(ctx context.Context, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	DeleteFunc  func(ctx context.Context, noteID uuid.UUID) error

	calls struct {
		List   []domain.NoteFilter
		Create []*domain.Note
		Update []uuid.UUID
		Delete []uuid.UUID
	}
	mu sync.Mutex
}

func (m *noteRepoMock) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	if m.ListFunc == nil {
		panic("noteRepoMock.ListFunc: method is nil but noteRepo.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, filter)
	m.mu.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *noteRepoMock) GetByID(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	if m.GetByIDFunc == nil {
		panic("noteRepoMock.GetByIDFunc: method is nil but noteRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, noteID)
}

func (m *noteRepoMock) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc: method is nil but noteRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, note)
	m.mu.Unlock()
	return m.CreateFunc(ctx, note)
}

func (m *noteRepoMock) Update(ctx context.Context, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	if m.UpdateFunc == nil {
		panic("noteRepoMock.UpdateFunc: method is nil but noteRepo.Update was just called")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, noteID)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, noteID, params)
}

func (m *noteRepoMock) Delete(ctx context.Context, noteID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc: method is nil but noteRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, noteID)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, noteID)
}

func (m *noteRepoMock) CreateCalls() []*domain.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *noteRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}
