// Package jobs implements the job-application tracking store: an
// in-memory collection of tracked jobs persisted through the job
// repository.
//
// Error policy: flag and continue. A failed persistence call records a
// store-level error message, leaves the in-memory collection untouched,
// and the action returns without an error value. Callers read LastErr to
// surface the failure.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

type jobRepo interface {
	List(ctx context.Context) ([]*domain.Job, error)
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}

// UpdateParams carries partial job edits. Nil means "leave as is".
type UpdateParams struct {
	Position *string
	Company  *string
	Location *string
}

// Store owns the tracked-job collection. No other component mutates jobs.
type Store struct {
	repo jobRepo
	log  *slog.Logger

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	jobs    []*domain.Job
	lastErr string
}

// New creates an empty jobs store. Call Load to populate it.
func New(log *slog.Logger, repo jobRepo) *Store {
	return &Store{
		repo: repo,
		log:  log.With("store", "jobs"),
		now:  time.Now,
	}
}

// Load replaces the in-memory collection with the persisted one.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	jobs, err := s.repo.List(ctx)
	if err != nil {
		s.fail(ctx, "load jobs", err)
		return
	}

	s.jobs = jobs
}

// Jobs returns a snapshot of the tracked jobs, newest first.
func (s *Store) Jobs() []*domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Get returns the tracked job with the given ID, or nil.
func (s *Store) Get(jobID uuid.UUID) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(jobID)
}

// Add tracks a new job application. New jobs start at the saved stage
// with the saved timestamp stamped.
func (s *Store) Add(ctx context.Context, position, company string, location *string) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	now := s.now()
	j := &domain.Job{
		ID:       uuid.New(),
		Position: position,
		Company:  company,
		Location: location,
		Status:   domain.JobStatusSaved,
	}
	j.SetStageDate(domain.JobStatusSaved, now)

	created, err := s.repo.Create(ctx, j)
	if err != nil {
		s.fail(ctx, "add job", err)
		return nil
	}

	s.jobs = append([]*domain.Job{created}, s.jobs...)
	return created
}

// Update applies a partial edit to a tracked job.
func (s *Store) Update(ctx context.Context, jobID uuid.UUID, params UpdateParams) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	current := s.find(jobID)
	if current == nil {
		s.lastErr = "job not found"
		return nil
	}

	draft := *current
	if params.Position != nil {
		draft.Position = *params.Position
	}
	if params.Company != nil {
		draft.Company = *params.Company
	}
	if params.Location != nil {
		draft.Location = params.Location
	}

	updated, err := s.repo.Update(ctx, &draft)
	if err != nil {
		s.fail(ctx, "update job", err)
		return nil
	}

	s.replace(updated)
	return updated
}

// SetStatus jumps a job to any status, forward or backward; the pipeline
// is rendered as a progress tracker but never enforces forward-only
// moves. The target stage's timestamp is stamped only if it has never
// been set: regression does not rewrite history.
func (s *Store) SetStatus(ctx context.Context, jobID uuid.UUID, status domain.JobStatus) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	if !status.IsValid() {
		s.lastErr = "invalid status"
		return nil
	}

	current := s.find(jobID)
	if current == nil {
		s.lastErr = "job not found"
		return nil
	}

	draft := *current
	draft.Status = status
	if draft.StageDate(status) == nil {
		draft.SetStageDate(status, s.now())
	}

	updated, err := s.repo.Update(ctx, &draft)
	if err != nil {
		s.fail(ctx, "set job status", err)
		return nil
	}

	s.replace(updated)
	return updated
}

// Delete stops tracking a job. Deletion is immediate; any confirmation
// dialog is the UI's concern.
func (s *Store) Delete(ctx context.Context, jobID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""

	if s.find(jobID) == nil {
		s.lastErr = "job not found"
		return false
	}

	if err := s.repo.Delete(ctx, jobID); err != nil {
		s.fail(ctx, "delete job", err)
		return false
	}

	for i, j := range s.jobs {
		if j.ID == jobID {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
	return true
}

// StageTimes returns a human-relative timestamp ("3 days ago") for every
// stage whose date is recorded. Stages without a date are absent from the
// map regardless of completion state.
func (s *Store) StageTimes(jobID uuid.UUID) map[domain.JobStatus]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := s.find(jobID)
	if j == nil {
		return nil
	}

	out := make(map[domain.JobStatus]string)
	for _, stage := range domain.Stages {
		if d := j.StageDate(stage); d != nil {
			out[stage] = humanize.Time(*d)
		}
	}
	return out
}

// LastErr returns the message from the most recent failed action, or ""
// if the last action succeeded.
func (s *Store) LastErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// find returns the in-memory job with the given ID. Caller holds mu.
func (s *Store) find(jobID uuid.UUID) *domain.Job {
	for _, j := range s.jobs {
		if j.ID == jobID {
			return j
		}
	}
	return nil
}

// replace swaps the in-memory entry matching updated.ID. Caller holds mu.
func (s *Store) replace(updated *domain.Job) {
	for i, j := range s.jobs {
		if j.ID == updated.ID {
			s.jobs[i] = updated
			return
		}
	}
}

// fail records a store-level error. Caller holds mu.
func (s *Store) fail(ctx context.Context, action string, err error) {
	s.lastErr = action + ": " + err.Error()
	s.log.ErrorContext(ctx, action+" failed", slog.String("error", err.Error()))
}
