package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
	"github.com/studybuddy/backend/internal/service/note"
)

// noteService defines the minimal interface needed by NotesHandler.
type noteService interface {
	List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error)
	Get(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	Create(ctx context.Context, input note.CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, noteID uuid.UUID, input note.UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, noteID uuid.UUID) error
}

// NotesHandler serves note REST endpoints.
type NotesHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(svc noteService, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, log: logger.With("handler", "notes")}
}

type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Color   string   `json:"color"`
	Tags    []string `json:"tags"`
	Pinned  bool     `json:"pinned"`
}

type updateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Color   *string   `json:"color"`
	Tags    *[]string `json:"tags"`
	Pinned  *bool     `json:"pinned"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	Tags      []string  `json:"tags"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List handles GET /api/notes. Supports ?tag=, ?color=, and ?pinned=
// query filters.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.NoteFilter

	q := r.URL.Query()
	if tag := q.Get("tag"); tag != "" {
		filter.Tag = &tag
	}
	if color := q.Get("color"); color != "" {
		filter.Color = &color
	}
	if pinnedRaw := q.Get("pinned"); pinnedRaw != "" {
		pinned, err := strconv.ParseBool(pinnedRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid pinned filter")
			return
		}
		filter.Pinned = &pinned
	}

	notes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

// Get handles GET /api/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n, err := h.svc.Create(r.Context(), note.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
		Tags:    req.Tags,
		Pinned:  req.Pinned,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(n))
}

// Update handles PATCH /api/notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n, err := h.svc.Update(r.Context(), id, note.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
		Tags:    req.Tags,
		Pinned:  req.Pinned,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

// Delete handles DELETE /api/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NotesHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Color:     n.Color,
		Tags:      n.Tags,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}
