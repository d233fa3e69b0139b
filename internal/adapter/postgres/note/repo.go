// Package note implements the Note repository using PostgreSQL.
// It provides CRUD operations for user notes, with the list query built
// dynamically from optional tag/color/pinned filters.
package note

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/studybuddy/backend/internal/adapter/postgres"
	"github.com/studybuddy/backend/internal/domain"
)

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// noteColumns is the canonical column order shared by every query that
// scans a full note row.
var noteColumns = []string{"id", "title", "content", "color", "tags", "is_pinned", "created_at", "updated_at"}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns notes matching the filter, pinned first and newest-created
// first within each group. Returns an empty slice (not nil) when no notes match.
func (r *Repo) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	qb := psql.Select(noteColumns...).
		From("notes").
		OrderBy("is_pinned DESC", "created_at DESC")

	if filter.Tag != nil {
		qb = qb.Where(sq.Expr("? = ANY(tags)", *filter.Tag))
	}
	if filter.Color != nil {
		qb = qb.Where(sq.Eq{"color": *filter.Color})
	}
	if filter.Pinned != nil {
		qb = qb.Where(sq.Eq{"is_pinned": *filter.Pinned})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notes query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	result, err := scanNotes(rows)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return result, nil
}

// GetByID returns a note by primary key.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) GetByID(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	query, args, err := psql.Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get note query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var row noteRow
	if err := scanNote(querier.QueryRow(ctx, query, args...), &row); err != nil {
		return nil, postgres.MapError(err, "note", noteID)
	}

	n := row.toDomain()
	return &n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new note and returns the persisted domain.Note.
func (r *Repo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	row := rowFromDomain(*note)

	query, args, err := psql.Insert("notes").
		Columns("id", "title", "content", "color", "tags", "is_pinned").
		Values(row.ID, row.Title, row.Content, row.Color, row.Tags, row.IsPinned).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create note query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created noteRow
	if err := scanNote(querier.QueryRow(ctx, query, args...), &created); err != nil {
		return nil, postgres.MapError(err, "note", note.ID)
	}

	n := created.toDomain()
	return &n, nil
}

// Update applies partial updates and returns the updated domain.Note.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) Update(ctx context.Context, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	qb := psql.Update("notes").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": noteID}).
		Suffix("RETURNING " + joinColumns())

	if params.Title != nil {
		qb = qb.Set("title", *params.Title)
	}
	if params.Content != nil {
		qb = qb.Set("content", *params.Content)
	}
	if params.Color != nil {
		qb = qb.Set("color", *params.Color)
	}
	if params.Tags != nil {
		qb = qb.Set("tags", *params.Tags)
	}
	if params.Pinned != nil {
		qb = qb.Set("is_pinned", *params.Pinned)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update note query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var updated noteRow
	if err := scanNote(querier.QueryRow(ctx, query, args...), &updated); err != nil {
		return nil, postgres.MapError(err, "note", noteID)
	}

	n := updated.toDomain()
	return &n, nil
}

// Delete removes a note. Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) Delete(ctx context.Context, noteID uuid.UUID) error {
	query, args, err := psql.Delete("notes").
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete note query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func joinColumns() string {
	out := noteColumns[0]
	for _, c := range noteColumns[1:] {
		out += ", " + c
	}
	return out
}

func scanNote(row pgx.Row, dst *noteRow) error {
	return row.Scan(
		&dst.ID,
		&dst.Title,
		&dst.Content,
		&dst.Color,
		&dst.Tags,
		&dst.IsPinned,
		&dst.CreatedAt,
		&dst.UpdatedAt,
	)
}

func scanNotes(rows pgx.Rows) ([]*domain.Note, error) {
	var result []*domain.Note
	for rows.Next() {
		var row noteRow
		if err := scanNote(rows, &row); err != nil {
			return nil, err
		}
		n := row.toDomain()
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Note{}
	}

	return result, nil
}
