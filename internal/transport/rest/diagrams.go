package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// diagramService defines the minimal interface needed by DiagramsHandler.
// The service reports failures through sentinel returns (nil, empty slice,
// false) rather than errors.
type diagramService interface {
	ListDiagrams(ctx context.Context) []*domain.Diagram
	GetDiagram(ctx context.Context, diagramID uuid.UUID) *domain.Diagram
	CreateDiagram(ctx context.Context, title, imageURL string) *domain.Diagram
	UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) *domain.Diagram
	DeleteDiagram(ctx context.Context, diagramID uuid.UUID) bool
	CreateLabel(ctx context.Context, diagramID uuid.UUID, number int, x, y float64, answer string) *domain.Label
	UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) *domain.Label
	DeleteLabel(ctx context.Context, labelID uuid.UUID) bool
}

// DiagramsHandler serves diagram and label REST endpoints.
type DiagramsHandler struct {
	svc diagramService
	log *slog.Logger
}

// NewDiagramsHandler creates a DiagramsHandler.
func NewDiagramsHandler(svc diagramService, logger *slog.Logger) *DiagramsHandler {
	return &DiagramsHandler{svc: svc, log: logger.With("handler", "diagrams")}
}

type diagramRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

type labelRequest struct {
	Number int     `json:"number"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Answer string  `json:"answer"`
}

type diagramResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"imageUrl"`
	Labels    []labelResponse `json:"labels"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type labelResponse struct {
	ID        string  `json:"id"`
	DiagramID string  `json:"diagramId"`
	Number    int     `json:"number"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Answer    string  `json:"answer"`
}

// List handles GET /api/diagrams. A backend failure yields an empty list.
func (h *DiagramsHandler) List(w http.ResponseWriter, r *http.Request) {
	diagrams := h.svc.ListDiagrams(r.Context())
	writeJSON(w, http.StatusOK, toDiagramResponses(diagrams))
}

// Get handles GET /api/diagrams/{id}.
func (h *DiagramsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d := h.svc.GetDiagram(r.Context(), id)
	if d == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, toDiagramResponse(d))
}

// Create handles POST /api/diagrams.
func (h *DiagramsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d := h.svc.CreateDiagram(r.Context(), req.Title, req.ImageURL)
	if d == nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toDiagramResponse(d))
}

// Update handles PATCH /api/diagrams/{id}.
func (h *DiagramsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req diagramRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d := h.svc.UpdateDiagram(r.Context(), id, req.Title, req.ImageURL)
	if d == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, toDiagramResponse(d))
}

// Delete handles DELETE /api/diagrams/{id}. Labels are removed first; the
// diagram survives if the label removal fails.
func (h *DiagramsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !h.svc.DeleteDiagram(r.Context(), id) {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateLabel handles POST /api/diagrams/{id}/labels.
func (h *DiagramsHandler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req labelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l := h.svc.CreateLabel(r.Context(), id, req.Number, req.X, req.Y, req.Answer)
	if l == nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toLabelResponse(*l))
}

// UpdateLabel handles PATCH /api/labels/{id}.
func (h *DiagramsHandler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req labelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l := h.svc.UpdateLabel(r.Context(), id, req.Number, req.X, req.Y, req.Answer)
	if l == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, toLabelResponse(*l))
}

// DeleteLabel handles DELETE /api/labels/{id}.
func (h *DiagramsHandler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !h.svc.DeleteLabel(r.Context(), id) {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDiagramResponse(d *domain.Diagram) diagramResponse {
	labels := make([]labelResponse, 0, len(d.Labels))
	for _, l := range d.Labels {
		labels = append(labels, toLabelResponse(l))
	}
	return diagramResponse{
		ID:        d.ID.String(),
		Title:     d.Title,
		ImageURL:  d.ImageURL,
		Labels:    labels,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDiagramResponses(diagrams []*domain.Diagram) []diagramResponse {
	out := make([]diagramResponse, 0, len(diagrams))
	for _, d := range diagrams {
		out = append(out, toDiagramResponse(d))
	}
	return out
}

func toLabelResponse(l domain.Label) labelResponse {
	return labelResponse{
		ID:        l.ID.String(),
		DiagramID: l.DiagramID.String(),
		Number:    l.Number,
		X:         l.X,
		Y:         l.Y,
		Answer:    l.Answer,
	}
}
