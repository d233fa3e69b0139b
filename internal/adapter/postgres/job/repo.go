// Package job implements the Job repository using PostgreSQL.
// It provides CRUD operations for tracked job applications.
package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/studybuddy/backend/internal/adapter/postgres"
	"github.com/studybuddy/backend/internal/domain"
)

// Repo provides job persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new job repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const jobColumns = `id, position, company, location, status,
saved_date, applied_date, screen_date, interview_date, offer_date,
created_at, updated_at`

const listJobsSQL = `
SELECT ` + jobColumns + `
FROM jobs
ORDER BY created_at DESC`

const getJobSQL = `
SELECT ` + jobColumns + `
FROM jobs
WHERE id = $1`

const createJobSQL = `
INSERT INTO jobs (id, position, company, location, status, saved_date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + jobColumns

const updateJobSQL = `
UPDATE jobs
SET position = $2, company = $3, location = $4, status = $5,
    saved_date = $6, applied_date = $7, screen_date = $8,
    interview_date = $9, offer_date = $10, updated_at = now()
WHERE id = $1
RETURNING ` + jobColumns

const deleteJobSQL = `DELETE FROM jobs WHERE id = $1`

// List returns all tracked jobs, newest first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]*domain.Job, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listJobsSQL)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	result, err := scanJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return result, nil
}

// GetByID returns a job by primary key.
// Returns domain.ErrNotFound if the job does not exist.
func (r *Repo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row jobRow
	if err := scanJob(querier.QueryRow(ctx, getJobSQL, jobID), &row); err != nil {
		return nil, postgres.MapError(err, "job", jobID)
	}

	j := row.toDomain()
	return &j, nil
}

// Create inserts a new job and returns the persisted domain.Job.
func (r *Repo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	row := rowFromDomain(*j)

	var created jobRow
	err := scanJob(querier.QueryRow(ctx, createJobSQL,
		row.ID, row.Position, row.Company, row.Location, row.Status, row.SavedDate), &created)
	if err != nil {
		return nil, postgres.MapError(err, "job", j.ID)
	}

	result := created.toDomain()
	return &result, nil
}

// Update saves all mutable job fields, stage dates included.
// Returns domain.ErrNotFound if the job does not exist.
func (r *Repo) Update(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	row := rowFromDomain(*j)

	var updated jobRow
	err := scanJob(querier.QueryRow(ctx, updateJobSQL,
		row.ID, row.Position, row.Company, row.Location, row.Status,
		row.SavedDate, row.AppliedDate, row.ScreenDate,
		row.InterviewDate, row.OfferDate), &updated)
	if err != nil {
		return nil, postgres.MapError(err, "job", j.ID)
	}

	result := updated.toDomain()
	return &result, nil
}

// Delete removes a job. Returns domain.ErrNotFound if the job does not exist.
func (r *Repo) Delete(ctx context.Context, jobID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteJobSQL, jobID)
	if err != nil {
		return postgres.MapError(err, "job", jobID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanJob(row pgx.Row, dst *jobRow) error {
	return row.Scan(
		&dst.ID,
		&dst.Position,
		&dst.Company,
		&dst.Location,
		&dst.Status,
		&dst.SavedDate,
		&dst.AppliedDate,
		&dst.ScreenDate,
		&dst.InterviewDate,
		&dst.OfferDate,
		&dst.CreatedAt,
		&dst.UpdatedAt,
	)
}

func scanJobs(rows pgx.Rows) ([]*domain.Job, error) {
	var result []*domain.Job
	for rows.Next() {
		var row jobRow
		if err := scanJob(rows, &row); err != nil {
			return nil, err
		}
		j := row.toDomain()
		result = append(result, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Job{}
	}

	return result, nil
}
