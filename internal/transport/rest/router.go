package rest

import (
	"net/http"

	"github.com/studybuddy/backend/internal/transport/middleware"
)

// Handlers bundles every REST handler for router construction.
type Handlers struct {
	Auth     *AuthHandler
	Notes    *NotesHandler
	Diagrams *DiagramsHandler
	Jobs     *JobsHandler
	Events   *EventsHandler
	Prefs    *PrefsHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP route table. Health probes and the unlock
// endpoint are open; everything under /api requires a valid session.
func NewRouter(h Handlers, session middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/unlock", h.Auth.Unlock)

	guard := func(fn http.HandlerFunc) http.Handler {
		return session(fn)
	}

	mux.Handle("GET /api/notes", guard(h.Notes.List))
	mux.Handle("POST /api/notes", guard(h.Notes.Create))
	mux.Handle("GET /api/notes/{id}", guard(h.Notes.Get))
	mux.Handle("PATCH /api/notes/{id}", guard(h.Notes.Update))
	mux.Handle("DELETE /api/notes/{id}", guard(h.Notes.Delete))

	mux.Handle("GET /api/diagrams", guard(h.Diagrams.List))
	mux.Handle("POST /api/diagrams", guard(h.Diagrams.Create))
	mux.Handle("GET /api/diagrams/{id}", guard(h.Diagrams.Get))
	mux.Handle("PATCH /api/diagrams/{id}", guard(h.Diagrams.Update))
	mux.Handle("DELETE /api/diagrams/{id}", guard(h.Diagrams.Delete))
	mux.Handle("POST /api/diagrams/{id}/labels", guard(h.Diagrams.CreateLabel))
	mux.Handle("PATCH /api/labels/{id}", guard(h.Diagrams.UpdateLabel))
	mux.Handle("DELETE /api/labels/{id}", guard(h.Diagrams.DeleteLabel))

	mux.Handle("GET /api/jobs", guard(h.Jobs.List))
	mux.Handle("POST /api/jobs", guard(h.Jobs.Create))
	mux.Handle("GET /api/jobs/{id}", guard(h.Jobs.Get))
	mux.Handle("PATCH /api/jobs/{id}", guard(h.Jobs.Update))
	mux.Handle("POST /api/jobs/{id}/status", guard(h.Jobs.SetStatus))
	mux.Handle("DELETE /api/jobs/{id}", guard(h.Jobs.Delete))

	mux.Handle("GET /api/events", guard(h.Events.List))
	mux.Handle("POST /api/events", guard(h.Events.Create))
	mux.Handle("GET /api/events/upcoming", guard(h.Events.Upcoming))
	mux.Handle("GET /api/events/{id}/countdown", guard(h.Events.Countdown))
	mux.Handle("PATCH /api/events/{id}", guard(h.Events.Update))
	mux.Handle("DELETE /api/events/{id}", guard(h.Events.Delete))

	mux.Handle("GET /api/prefs", guard(h.Prefs.Get))
	mux.Handle("PUT /api/prefs/theme", guard(h.Prefs.SetTheme))
	mux.Handle("POST /api/prefs/welcome", guard(h.Prefs.MarkWelcomeSeen))

	return mux
}
