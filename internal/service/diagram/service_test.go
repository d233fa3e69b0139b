package diagram

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/backend/internal/domain"
)

// passthroughTx runs the callback directly without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo diagramRepo) *Service {
	return NewService(slog.Default(), repo, passthroughTx{})
}

func TestService_ListDiagrams_SentinelOnFailure(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		ListDiagramsFunc: func(ctx context.Context) ([]*domain.Diagram, error) {
			return nil, errors.New("boom")
		},
	}

	got := newTestService(repo).ListDiagrams(context.Background())

	// Sentinel policy: an empty slice, never nil and never an error.
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_GetDiagram_NilOnFailure(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		GetDiagramFunc: func(ctx context.Context, id uuid.UUID) (*domain.Diagram, error) {
			return nil, domain.ErrNotFound
		},
	}

	got := newTestService(repo).GetDiagram(context.Background(), uuid.New())
	assert.Nil(t, got)
}

func TestService_CreateDiagram_Success(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		CreateDiagramFunc: func(ctx context.Context, d *domain.Diagram) (*domain.Diagram, error) {
			return d, nil
		},
	}

	got := newTestService(repo).CreateDiagram(context.Background(), "Heart anatomy", "https://img/heart.png")

	require.NotNil(t, got)
	assert.Equal(t, "Heart anatomy", got.Title)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestService_DeleteDiagram_CascadesChildFirst(t *testing.T) {
	t.Parallel()

	diagramID := uuid.New()
	repo := &diagramRepoMock{
		DeleteLabelsByDiagramFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
			assert.Equal(t, diagramID, id)
			return 4, nil
		},
		DeleteDiagramFunc: func(ctx context.Context, id uuid.UUID) error {
			return nil
		},
	}

	ok := newTestService(repo).DeleteDiagram(context.Background(), diagramID)

	assert.True(t, ok)
	assert.Len(t, repo.DeleteLabelsByDiagramCalls(), 1)
	assert.Len(t, repo.DeleteDiagramCalls(), 1)
}

func TestService_DeleteDiagram_AbortsWhenLabelDeleteFails(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		DeleteLabelsByDiagramFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
			return 0, errors.New("label delete failed")
		},
		DeleteDiagramFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("diagram delete must not run when the label delete fails")
			return nil
		},
	}

	ok := newTestService(repo).DeleteDiagram(context.Background(), uuid.New())

	assert.False(t, ok)
	assert.Empty(t, repo.DeleteDiagramCalls())
}

func TestService_DeleteDiagram_FalseWhenParentDeleteFails(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		DeleteLabelsByDiagramFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
			return 0, nil
		},
		DeleteDiagramFunc: func(ctx context.Context, id uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	ok := newTestService(repo).DeleteDiagram(context.Background(), uuid.New())
	assert.False(t, ok)
}

func TestService_Labels_Sentinels(t *testing.T) {
	t.Parallel()

	repo := &diagramRepoMock{
		CreateLabelFunc: func(ctx context.Context, l *domain.Label) (*domain.Label, error) {
			return nil, errors.New("boom")
		},
		UpdateLabelFunc: func(ctx context.Context, id uuid.UUID, n int, x, y float64, a string) (*domain.Label, error) {
			return nil, errors.New("boom")
		},
		DeleteLabelFunc: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("boom")
		},
	}

	svc := newTestService(repo)
	ctx := context.Background()

	assert.Nil(t, svc.CreateLabel(ctx, uuid.New(), 1, 0.1, 0.2, "aorta"))
	assert.Nil(t, svc.UpdateLabel(ctx, uuid.New(), 2, 0.3, 0.4, "ventricle"))
	assert.False(t, svc.DeleteLabel(ctx, uuid.New()))
}

func TestService_CreateLabel_Success(t *testing.T) {
	t.Parallel()

	diagramID := uuid.New()
	repo := &diagramRepoMock{
		CreateLabelFunc: func(ctx context.Context, l *domain.Label) (*domain.Label, error) {
			return l, nil
		},
	}

	got := newTestService(repo).CreateLabel(context.Background(), diagramID, 7, 0.5, 0.5, "axon")

	require.NotNil(t, got)
	assert.Equal(t, diagramID, got.DiagramID)
	assert.Equal(t, 7, got.Number)
}
