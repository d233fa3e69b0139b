package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedNote inserts a note row with an explicit created_at so ordering
// tests are deterministic. Tags should include a per-test unique tag:
// the database is shared across parallel tests and list queries must be
// scoped by it. Returns the filled domain.Note.
func SeedNote(t *testing.T, pool *pgxpool.Pool, title string, pinned bool, tags []string, createdAt time.Time) domain.Note {
	t.Helper()
	ctx := context.Background()

	if tags == nil {
		tags = []string{}
	}
	note := domain.Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content " + uniqueSuffix(),
		Color:     "yellow",
		Tags:      tags,
		Pinned:    pinned,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notes (id, title, content, color, tags, is_pinned, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		note.ID, note.Title, note.Content, note.Color, note.Tags, note.Pinned, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert note: %v", err)
	}

	return note
}

// SeedDiagram inserts a diagram row without labels. Returns the filled domain.Diagram.
func SeedDiagram(t *testing.T, pool *pgxpool.Pool) domain.Diagram {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	d := domain.Diagram{
		ID:        uuid.New(),
		Title:     "Diagram " + suffix,
		ImageURL:  "https://example.com/images/" + suffix + ".png",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO diagrams (id, title, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Title, d.ImageURL, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDiagram insert diagram: %v", err)
	}

	return d
}

// SeedLabel inserts a label row on the given diagram. Returns the filled domain.Label.
func SeedLabel(t *testing.T, pool *pgxpool.Pool, diagramID uuid.UUID, number int) domain.Label {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	l := domain.Label{
		ID:        uuid.New(),
		DiagramID: diagramID,
		Number:    number,
		X:         0.25,
		Y:         0.75,
		Answer:    "answer " + uniqueSuffix(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO diagram_labels (id, diagram_id, label_number, pos_x, pos_y, answer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.DiagramID, l.Number, l.X, l.Y, l.Answer, l.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLabel insert label: %v", err)
	}

	return l
}

// SeedJob inserts a job row with an explicit created_at so ordering tests
// are deterministic. Returns the filled domain.Job.
func SeedJob(t *testing.T, pool *pgxpool.Pool, createdAt time.Time) domain.Job {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	saved := createdAt
	j := domain.Job{
		ID:        uuid.New(),
		Position:  "Engineer " + suffix,
		Company:   "Company " + suffix,
		Status:    domain.JobStatusSaved,
		SavedDate: &saved,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO jobs (id, position, company, status, saved_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Position, j.Company, string(j.Status), j.SavedDate, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJob insert job: %v", err)
	}

	return j
}
