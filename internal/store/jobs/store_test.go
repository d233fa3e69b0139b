package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/backend/internal/domain"
)

type jobRepoMock struct {
	ListFunc   func(ctx context.Context) ([]*domain.Job, error)
	CreateFunc func(ctx context.Context, j *domain.Job) (*domain.Job, error)
	UpdateFunc func(ctx context.Context, j *domain.Job) (*domain.Job, error)
	DeleteFunc func(ctx context.Context, jobID uuid.UUID) error

	mu          sync.Mutex
	updateCalls []*domain.Job
}

func (m *jobRepoMock) List(ctx context.Context) ([]*domain.Job, error) {
	if m.ListFunc == nil {
		return []*domain.Job{}, nil
	}
	return m.ListFunc(ctx)
}

func (m *jobRepoMock) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	if m.CreateFunc == nil {
		return j, nil
	}
	return m.CreateFunc(ctx, j)
}

func (m *jobRepoMock) Update(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	m.mu.Lock()
	cp := *j
	m.updateCalls = append(m.updateCalls, &cp)
	m.mu.Unlock()
	if m.UpdateFunc == nil {
		return j, nil
	}
	return m.UpdateFunc(ctx, j)
}

func (m *jobRepoMock) Delete(ctx context.Context, jobID uuid.UUID) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, jobID)
}

func newTestStore(repo jobRepo) *Store {
	return New(slog.Default(), repo)
}

func seedJob(t *testing.T, s *Store) *domain.Job {
	t.Helper()
	j := s.Add(context.Background(), "Backend Engineer", "Acme", nil)
	require.NotNil(t, j)
	require.Empty(t, s.LastErr())
	return j
}

func TestStore_Add_DefaultsToSaved(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	assert.Equal(t, domain.JobStatusSaved, j.Status)
	require.NotNil(t, j.SavedDate)
	assert.Nil(t, j.AppliedDate)
	assert.Len(t, s.Jobs(), 1)
}

func TestStore_SetStatus_ArbitraryJumps(t *testing.T) {
	t.Parallel()

	// Any stage is directly selectable from any status, including
	// backward moves.
	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	for _, target := range []domain.JobStatus{
		domain.JobStatusOffer,
		domain.JobStatusApplied,
		domain.JobStatusInterview,
		domain.JobStatusSaved,
	} {
		got := s.SetStatus(context.Background(), j.ID, target)
		require.NotNil(t, got, "jump to %s", target)
		assert.Equal(t, target, got.Status)
	}
}

func TestStore_SetStatus_RejectedAllowed(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	got := s.SetStatus(context.Background(), j.ID, domain.JobStatusRejected)
	require.NotNil(t, got)
	assert.Equal(t, domain.JobStatusRejected, got.Status)
	assert.Equal(t, -1, domain.StageIndex(got.Status))
}

func TestStore_SetStatus_InvalidStatusFlagged(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	got := s.SetStatus(context.Background(), j.ID, domain.JobStatus("GHOSTED"))
	assert.Nil(t, got)
	assert.Equal(t, "invalid status", s.LastErr())
}

func TestStore_SetStatus_StampsOnce(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	t0 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	j := seedJob(t, s)

	got := s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)
	require.NotNil(t, got)
	require.NotNil(t, got.AppliedDate)
	assert.Equal(t, t0, *got.AppliedDate)

	// Regress, then advance again later: the original timestamp stays.
	s.now = func() time.Time { return t0.Add(48 * time.Hour) }
	s.SetStatus(context.Background(), j.ID, domain.JobStatusSaved)
	got = s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)
	require.NotNil(t, got)
	assert.Equal(t, t0, *got.AppliedDate)
}

func TestStore_SetStatus_RegressionKeepsLaterStamps(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	s.SetStatus(context.Background(), j.ID, domain.JobStatusOffer)
	got := s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)

	require.NotNil(t, got)
	assert.Equal(t, domain.JobStatusApplied, got.Status)
	assert.NotNil(t, got.OfferDate, "regression must not clear stage timestamps")
}

func TestStore_SetStatus_PersistenceFailureLeavesMemoryUnchanged(t *testing.T) {
	t.Parallel()

	repo := &jobRepoMock{}
	s := newTestStore(repo)
	j := seedJob(t, s)

	repo.UpdateFunc = func(ctx context.Context, job *domain.Job) (*domain.Job, error) {
		return nil, errors.New("connection refused")
	}

	got := s.SetStatus(context.Background(), j.ID, domain.JobStatusOffer)

	assert.Nil(t, got)
	assert.Contains(t, s.LastErr(), "set job status")

	// Flag policy: no partial mutation on failure.
	inMem := s.Get(j.ID)
	require.NotNil(t, inMem)
	assert.Equal(t, domain.JobStatusSaved, inMem.Status)
	assert.Nil(t, inMem.OfferDate)
}

func TestStore_LastErrClearsOnNextSuccess(t *testing.T) {
	t.Parallel()

	repo := &jobRepoMock{}
	s := newTestStore(repo)
	j := seedJob(t, s)

	repo.UpdateFunc = func(ctx context.Context, job *domain.Job) (*domain.Job, error) {
		return nil, errors.New("boom")
	}
	s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)
	require.NotEmpty(t, s.LastErr())

	repo.UpdateFunc = nil
	s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)
	assert.Empty(t, s.LastErr())
}

func TestStore_Delete_RemovesFromMemory(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	ok := s.Delete(context.Background(), j.ID)
	assert.True(t, ok)
	assert.Empty(t, s.Jobs())
}

func TestStore_Delete_FailureKeepsJob(t *testing.T) {
	t.Parallel()

	repo := &jobRepoMock{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("boom")
		},
	}
	s := newTestStore(repo)
	j := seedJob(t, s)

	ok := s.Delete(context.Background(), j.ID)
	assert.False(t, ok)
	assert.Len(t, s.Jobs(), 1)
	assert.Contains(t, s.LastErr(), "delete job")
}

func TestStore_StageTimes_OnlyRecordedStages(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	s.now = func() time.Time { return time.Now().Add(-72 * time.Hour) }
	j := seedJob(t, s)

	s.now = time.Now
	s.SetStatus(context.Background(), j.ID, domain.JobStatusApplied)

	times := s.StageTimes(j.ID)
	require.Len(t, times, 2)
	assert.Contains(t, times, domain.JobStatusSaved)
	assert.Contains(t, times, domain.JobStatusApplied)
	assert.Equal(t, "3 days ago", times[domain.JobStatusSaved])
	assert.NotContains(t, times, domain.JobStatusScreen)
}

func TestStore_Update_PartialEdit(t *testing.T) {
	t.Parallel()

	s := newTestStore(&jobRepoMock{})
	j := seedJob(t, s)

	loc := "Remote"
	got := s.Update(context.Background(), j.ID, UpdateParams{Location: &loc})

	require.NotNil(t, got)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Remote", *got.Location)
	assert.Equal(t, "Backend Engineer", got.Position)
}

func TestStore_Load_PopulatesFromRepo(t *testing.T) {
	t.Parallel()

	stored := []*domain.Job{
		{ID: uuid.New(), Position: "A", Company: "X", Status: domain.JobStatusApplied},
		{ID: uuid.New(), Position: "B", Company: "Y", Status: domain.JobStatusOffer},
	}
	repo := &jobRepoMock{
		ListFunc: func(ctx context.Context) ([]*domain.Job, error) {
			return stored, nil
		},
	}

	s := newTestStore(repo)
	s.Load(context.Background())

	assert.Len(t, s.Jobs(), 2)
	assert.Empty(t, s.LastErr())
}
