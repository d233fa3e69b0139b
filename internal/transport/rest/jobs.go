package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
	"github.com/studybuddy/backend/internal/store/jobs"
)

// jobStore defines the minimal interface needed by JobsHandler. Failures
// surface as nil/false returns with a message in LastErr.
type jobStore interface {
	Jobs() []*domain.Job
	Get(jobID uuid.UUID) *domain.Job
	Add(ctx context.Context, position, company string, location *string) *domain.Job
	Update(ctx context.Context, jobID uuid.UUID, params jobs.UpdateParams) *domain.Job
	SetStatus(ctx context.Context, jobID uuid.UUID, status domain.JobStatus) *domain.Job
	Delete(ctx context.Context, jobID uuid.UUID) bool
	StageTimes(jobID uuid.UUID) map[domain.JobStatus]string
	LastErr() string
}

// JobsHandler serves job application tracker REST endpoints.
type JobsHandler struct {
	store jobStore
	log   *slog.Logger
}

// NewJobsHandler creates a JobsHandler.
func NewJobsHandler(store jobStore, logger *slog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: logger.With("handler", "jobs")}
}

type createJobRequest struct {
	Position string  `json:"position"`
	Company  string  `json:"company"`
	Location *string `json:"location"`
}

type updateJobRequest struct {
	Position *string `json:"position"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type jobResponse struct {
	ID            string     `json:"id"`
	Position      string     `json:"position"`
	Company       string     `json:"company"`
	Location      *string    `json:"location,omitempty"`
	Status        string     `json:"status"`
	SavedDate     *time.Time `json:"savedDate,omitempty"`
	AppliedDate   *time.Time `json:"appliedDate,omitempty"`
	ScreenDate    *time.Time `json:"screenDate,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	OfferDate     *time.Time `json:"offerDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// StageTimes maps recorded stages to relative times ("3 days ago").
	StageTimes map[string]string `json:"stageTimes,omitempty"`
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.Jobs()
	out := make([]jobResponse, 0, len(all))
	for _, j := range all {
		out = append(out, toJobResponse(j, nil))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/jobs/{id}. Includes relative stage times.
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	j := h.store.Get(id)
	if j == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j, h.store.StageTimes(id)))
}

// Create handles POST /api/jobs.
func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Position) == "" || strings.TrimSpace(req.Company) == "" {
		writeError(w, http.StatusBadRequest, "position and company are required")
		return
	}

	j := h.store.Add(r.Context(), req.Position, req.Company, req.Location)
	if j == nil {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusCreated, toJobResponse(j, nil))
}

// Update handles PATCH /api/jobs/{id}.
func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	j := h.store.Update(r.Context(), id, jobs.UpdateParams{
		Position: req.Position,
		Company:  req.Company,
		Location: req.Location,
	})
	if j == nil {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j, nil))
}

// SetStatus handles POST /api/jobs/{id}/status. Any valid status is
// accepted, in either direction.
func (h *JobsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	j := h.store.SetStatus(r.Context(), id, domain.JobStatus(req.Status))
	if j == nil {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusOK, toJobResponse(j, h.store.StageTimes(id)))
}

// Delete handles DELETE /api/jobs/{id}.
func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !h.store.Delete(r.Context(), id) {
		h.storeError(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// storeError translates the store's last error message into a status code.
func (h *JobsHandler) storeError(w http.ResponseWriter, r *http.Request) {
	msg := h.store.LastErr()
	switch msg {
	case "job not found":
		writeError(w, http.StatusNotFound, "not found")
	case "invalid status":
		writeError(w, http.StatusBadRequest, "invalid status")
	default:
		h.log.ErrorContext(r.Context(), "job store error", slog.String("error", msg))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toJobResponse(j *domain.Job, stageTimes map[domain.JobStatus]string) jobResponse {
	resp := jobResponse{
		ID:            j.ID.String(),
		Position:      j.Position,
		Company:       j.Company,
		Location:      j.Location,
		Status:        string(j.Status),
		SavedDate:     j.SavedDate,
		AppliedDate:   j.AppliedDate,
		ScreenDate:    j.ScreenDate,
		InterviewDate: j.InterviewDate,
		OfferDate:     j.OfferDate,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
	if len(stageTimes) > 0 {
		resp.StageTimes = make(map[string]string, len(stageTimes))
		for status, rel := range stageTimes {
			resp.StageTimes[string(status)] = rel
		}
	}
	return resp
}
