package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
	"github.com/studybuddy/backend/internal/store/events"
)

// eventStore defines the minimal interface needed by EventsHandler.
type eventStore interface {
	Events() []*domain.Event
	Add(emoji, name, anchor string, description *string, recurring bool) *domain.Event
	Update(eventID uuid.UUID, params events.UpdateParams) *domain.Event
	Delete(eventID uuid.UUID) bool
	Upcoming(now time.Time) []*domain.Event
	TimeUntil(eventID uuid.UUID, now time.Time) (string, bool)
	LastErr() string
}

// EventsHandler serves recurring-event countdown REST endpoints.
type EventsHandler struct {
	store eventStore
	log   *slog.Logger
	now   func() time.Time
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(store eventStore, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		store: store,
		log:   logger.With("handler", "events"),
		now:   time.Now,
	}
}

type createEventRequest struct {
	Emoji       string  `json:"emoji"`
	Name        string  `json:"name"`
	Date        string  `json:"date"` // "MM-DD"
	Description *string `json:"description"`
	Recurring   bool    `json:"isRecurring"`
}

type updateEventRequest struct {
	Emoji       *string `json:"emoji"`
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Recurring   *bool   `json:"isRecurring"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Emoji       string    `json:"emoji"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Description *string   `json:"description,omitempty"`
	Recurring   bool      `json:"isRecurring"`
	Countdown   string    `json:"countdown,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type countdownResponse struct {
	Countdown string `json:"countdown"`
}

// List handles GET /api/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.Events()
	out := make([]eventResponse, 0, len(all))
	for _, e := range all {
		out = append(out, toEventResponse(e, ""))
	}
	writeJSON(w, http.StatusOK, out)
}

// Upcoming handles GET /api/events/upcoming. Returns at most five events
// sorted by next occurrence, each with its countdown string.
func (h *EventsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	upcoming := h.store.Upcoming(now)

	out := make([]eventResponse, 0, len(upcoming))
	for _, e := range upcoming {
		countdown, _ := h.store.TimeUntil(e.ID, now)
		out = append(out, toEventResponse(e, countdown))
	}
	writeJSON(w, http.StatusOK, out)
}

// Countdown handles GET /api/events/{id}/countdown.
func (h *EventsHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	countdown, found := h.store.TimeUntil(id, h.now())
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, countdownResponse{Countdown: countdown})
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e := h.store.Add(req.Emoji, req.Name, req.Date, req.Description, req.Recurring)
	if e == nil {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(e, ""))
}

// Update handles PATCH /api/events/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e := h.store.Update(id, events.UpdateParams{
		Emoji:       req.Emoji,
		Name:        req.Name,
		Anchor:      req.Date,
		Description: req.Description,
		Recurring:   req.Recurring,
	})
	if e == nil {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e, ""))
}

// Delete handles DELETE /api/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !h.store.Delete(id) {
		h.storeError(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// storeError translates the store's last error message into a status code.
func (h *EventsHandler) storeError(w http.ResponseWriter, r *http.Request) {
	msg := h.store.LastErr()
	switch {
	case msg == "event not found":
		writeError(w, http.StatusNotFound, "not found")
	case msg == "name is required" || strings.HasPrefix(msg, "invalid date"):
		writeError(w, http.StatusBadRequest, msg)
	default:
		h.log.ErrorContext(r.Context(), "event store error", slog.String("error", msg))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toEventResponse(e *domain.Event, countdown string) eventResponse {
	return eventResponse{
		ID:          e.ID.String(),
		Emoji:       e.Emoji,
		Name:        e.Name,
		Date:        e.Anchor,
		Description: e.Description,
		Recurring:   e.Recurring,
		Countdown:   countdown,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
