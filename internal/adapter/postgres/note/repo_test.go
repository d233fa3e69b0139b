package note_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/internal/adapter/postgres/note"
	"github.com/studybuddy/backend/internal/adapter/postgres/testhelper"
	"github.com/studybuddy/backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*note.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return note.New(pool), pool
}

// scopeTag returns a unique tag for scoping list queries: the database is
// shared across parallel tests, so every list assertion filters by it.
func scopeTag() string {
	return "scope-" + uuid.New().String()[:8]
}

// ---------------------------------------------------------------------------
// Create + GetByID tests
// ---------------------------------------------------------------------------

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Note{
		ID:      uuid.New(),
		Title:   "Mitosis phases",
		Content: "prophase, metaphase, anaphase, telophase",
		Color:   "green",
		Tags:    []string{"biology", "exam"},
		Pinned:  true,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil note ID")
	}
	if created.Title != "Mitosis phases" {
		t.Errorf("Title mismatch: got %q", created.Title)
	}
	if !created.Pinned {
		t.Error("expected pinned note")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "biology" || created.Tags[1] != "exam" {
		t.Errorf("Tags mismatch: got %v", created.Tags)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
	if created.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should not be zero")
	}

	// GetByID round-trip.
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, created.ID)
	}
	if got.Title != created.Title {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, created.Title)
	}
	if got.Content != created.Content {
		t.Errorf("Content mismatch: got %q, want %q", got.Content, created.Content)
	}
	if got.Color != created.Color {
		t.Errorf("Color mismatch: got %q, want %q", got.Color, created.Color)
	}
	if len(got.Tags) != len(created.Tags) {
		t.Errorf("Tags mismatch: got %v, want %v", got.Tags, created.Tags)
	}
	if got.Pinned != created.Pinned {
		t.Errorf("Pinned mismatch: got %v, want %v", got.Pinned, created.Pinned)
	}
}

func TestRepo_Create_EmptyTags(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Note{ID: uuid.New(), Title: "no tags"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.Tags == nil {
		t.Fatal("expected empty tag slice, got nil")
	}
	if len(created.Tags) != 0 {
		t.Errorf("expected 0 tags, got %d", len(created.Tags))
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestRepo_List_PinnedFirstNewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	tag := scopeTag()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	oldUnpinned := testhelper.SeedNote(t, pool, "old unpinned", false, []string{tag}, base)
	newUnpinned := testhelper.SeedNote(t, pool, "new unpinned", false, []string{tag}, base.Add(2*time.Hour))
	oldPinned := testhelper.SeedNote(t, pool, "old pinned", true, []string{tag}, base.Add(time.Hour))
	newPinned := testhelper.SeedNote(t, pool, "new pinned", true, []string{tag}, base.Add(3*time.Hour))

	got, err := repo.List(ctx, domain.NoteFilter{Tag: &tag})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 notes, got %d", len(got))
	}

	wantOrder := []uuid.UUID{newPinned.ID, oldPinned.ID, newUnpinned.ID, oldUnpinned.ID}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: got %q, want note %s", i, got[i].Title, want)
		}
	}
}

func TestRepo_List_ColorAndPinnedFilters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	tag := scopeTag()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pinned := testhelper.SeedNote(t, pool, "pinned", true, []string{tag}, base)
	testhelper.SeedNote(t, pool, "unpinned", false, []string{tag}, base.Add(time.Hour))

	pinnedOnly := true
	got, err := repo.List(ctx, domain.NoteFilter{Tag: &tag, Pinned: &pinnedOnly})
	if err != nil {
		t.Fatalf("List pinned: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != pinned.ID {
		t.Fatalf("expected only the pinned note, got %d notes", len(got))
	}

	// Seeded notes are yellow; no red note carries this tag.
	red := "red"
	got, err = repo.List(ctx, domain.NoteFilter{Tag: &tag, Color: &red})
	if err != nil {
		t.Fatalf("List color: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 red notes, got %d", len(got))
	}
}

func TestRepo_List_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	tag := scopeTag()
	got, err := repo.List(context.Background(), domain.NoteFilter{Tag: &tag})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 notes, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestRepo_Update_Partial(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Note{
		ID:      uuid.New(),
		Title:   "original",
		Content: "original content",
		Color:   "blue",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTitle := "updated"
	updated, err := repo.Update(ctx, created.ID, domain.NoteUpdateParams{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("Title mismatch: got %q, want %q", updated.Title, newTitle)
	}
	if updated.Content != created.Content {
		t.Errorf("Content should be untouched: got %q, want %q", updated.Content, created.Content)
	}
	if updated.Color != created.Color {
		t.Errorf("Color should be untouched: got %q, want %q", updated.Color, created.Color)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("expected UpdatedAt to advance: got %s, created %s", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	title := "ghost"
	_, err := repo.Update(context.Background(), uuid.New(), domain.NoteUpdateParams{Title: &title})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Note{ID: uuid.New(), Title: "to delete"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err = repo.GetByID(ctx, created.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Delete(context.Background(), uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
