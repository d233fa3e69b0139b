// Package diagram implements the Diagram and Label repositories using
// PostgreSQL. There is no FK cascade between the two tables: removing a
// diagram's labels before the diagram row is the service's responsibility.
package diagram

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/studybuddy/backend/internal/adapter/postgres"
	"github.com/studybuddy/backend/internal/domain"
)

// Repo provides diagram and label persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new diagram repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listDiagramsSQL = `
SELECT id, title, image_url, created_at, updated_at
FROM diagrams
ORDER BY created_at DESC`

const getDiagramSQL = `
SELECT id, title, image_url, created_at, updated_at
FROM diagrams
WHERE id = $1`

const createDiagramSQL = `
INSERT INTO diagrams (id, title, image_url)
VALUES ($1, $2, $3)
RETURNING id, title, image_url, created_at, updated_at`

const updateDiagramSQL = `
UPDATE diagrams
SET title = $2, image_url = $3, updated_at = now()
WHERE id = $1
RETURNING id, title, image_url, created_at, updated_at`

const deleteDiagramSQL = `DELETE FROM diagrams WHERE id = $1`

const listLabelsSQL = `
SELECT id, diagram_id, label_number, pos_x, pos_y, answer, created_at
FROM diagram_labels
WHERE diagram_id = $1
ORDER BY label_number ASC`

const createLabelSQL = `
INSERT INTO diagram_labels (id, diagram_id, label_number, pos_x, pos_y, answer)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, diagram_id, label_number, pos_x, pos_y, answer, created_at`

const updateLabelSQL = `
UPDATE diagram_labels
SET label_number = $2, pos_x = $3, pos_y = $4, answer = $5
WHERE id = $1
RETURNING id, diagram_id, label_number, pos_x, pos_y, answer, created_at`

const deleteLabelSQL = `DELETE FROM diagram_labels WHERE id = $1`

const deleteLabelsByDiagramSQL = `DELETE FROM diagram_labels WHERE diagram_id = $1`

// ---------------------------------------------------------------------------
// Diagram operations
// ---------------------------------------------------------------------------

// ListDiagrams returns all diagrams, newest first, without labels.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListDiagrams(ctx context.Context) ([]*domain.Diagram, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listDiagramsSQL)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	result, err := scanDiagrams(rows)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}

	return result, nil
}

// GetDiagram returns a diagram by primary key, labels included.
// Returns domain.ErrNotFound if the diagram does not exist.
func (r *Repo) GetDiagram(ctx context.Context, diagramID uuid.UUID) (*domain.Diagram, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row diagramRow
	err := scanDiagram(querier.QueryRow(ctx, getDiagramSQL, diagramID), &row)
	if err != nil {
		return nil, postgres.MapError(err, "diagram", diagramID)
	}

	labels, err := r.ListLabels(ctx, diagramID)
	if err != nil {
		return nil, err
	}

	d := row.toDomain()
	for _, l := range labels {
		d.Labels = append(d.Labels, *l)
	}

	return &d, nil
}

// CreateDiagram inserts a new diagram and returns the persisted entity.
func (r *Repo) CreateDiagram(ctx context.Context, d *domain.Diagram) (*domain.Diagram, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created diagramRow
	err := scanDiagram(querier.QueryRow(ctx, createDiagramSQL, d.ID, d.Title, d.ImageURL), &created)
	if err != nil {
		return nil, postgres.MapError(err, "diagram", d.ID)
	}

	result := created.toDomain()
	return &result, nil
}

// UpdateDiagram overwrites a diagram's title and image reference.
// Returns domain.ErrNotFound if the diagram does not exist.
func (r *Repo) UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) (*domain.Diagram, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var updated diagramRow
	err := scanDiagram(querier.QueryRow(ctx, updateDiagramSQL, diagramID, title, imageURL), &updated)
	if err != nil {
		return nil, postgres.MapError(err, "diagram", diagramID)
	}

	result := updated.toDomain()
	return &result, nil
}

// DeleteDiagram removes the diagram row only. Labels must already be gone.
// Returns domain.ErrNotFound if the diagram does not exist.
func (r *Repo) DeleteDiagram(ctx context.Context, diagramID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteDiagramSQL, diagramID)
	if err != nil {
		return postgres.MapError(err, "diagram", diagramID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("diagram %s: %w", diagramID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Label operations
// ---------------------------------------------------------------------------

// ListLabels returns a diagram's labels ordered by label number.
// Returns an empty slice (not nil) when the diagram has no labels.
func (r *Repo) ListLabels(ctx context.Context, diagramID uuid.UUID) ([]*domain.Label, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listLabelsSQL, diagramID)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	result, err := scanLabels(rows)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	return result, nil
}

// CreateLabel inserts a new label and returns the persisted entity.
func (r *Repo) CreateLabel(ctx context.Context, l *domain.Label) (*domain.Label, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created labelRow
	err := scanLabel(querier.QueryRow(ctx, createLabelSQL,
		l.ID, l.DiagramID, l.Number, l.X, l.Y, l.Answer), &created)
	if err != nil {
		return nil, postgres.MapError(err, "diagram_label", l.ID)
	}

	result := created.toDomain()
	return &result, nil
}

// UpdateLabel overwrites a label's number, position and answer.
// Returns domain.ErrNotFound if the label does not exist.
func (r *Repo) UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) (*domain.Label, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var updated labelRow
	err := scanLabel(querier.QueryRow(ctx, updateLabelSQL, labelID, number, x, y, answer), &updated)
	if err != nil {
		return nil, postgres.MapError(err, "diagram_label", labelID)
	}

	result := updated.toDomain()
	return &result, nil
}

// DeleteLabel removes a label. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) DeleteLabel(ctx context.Context, labelID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteLabelSQL, labelID)
	if err != nil {
		return postgres.MapError(err, "diagram_label", labelID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("diagram_label %s: %w", labelID, domain.ErrNotFound)
	}

	return nil
}

// DeleteLabelsByDiagram removes all labels of a diagram. Idempotent:
// deleting from a label-less diagram is not an error. Returns the number
// of deleted labels.
func (r *Repo) DeleteLabelsByDiagram(ctx context.Context, diagramID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteLabelsByDiagramSQL, diagramID)
	if err != nil {
		return 0, fmt.Errorf("delete labels by diagram: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanDiagram(row pgx.Row, dst *diagramRow) error {
	return row.Scan(&dst.ID, &dst.Title, &dst.ImageURL, &dst.CreatedAt, &dst.UpdatedAt)
}

func scanDiagrams(rows pgx.Rows) ([]*domain.Diagram, error) {
	var result []*domain.Diagram
	for rows.Next() {
		var row diagramRow
		if err := scanDiagram(rows, &row); err != nil {
			return nil, err
		}
		d := row.toDomain()
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Diagram{}
	}

	return result, nil
}

func scanLabel(row pgx.Row, dst *labelRow) error {
	return row.Scan(&dst.ID, &dst.DiagramID, &dst.LabelNumber, &dst.PosX, &dst.PosY, &dst.Answer, &dst.CreatedAt)
}

func scanLabels(rows pgx.Rows) ([]*domain.Label, error) {
	var result []*domain.Label
	for rows.Next() {
		var row labelRow
		if err := scanLabel(rows, &row); err != nil {
			return nil, err
		}
		l := row.toDomain()
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Label{}
	}

	return result, nil
}
