package rest

import (
	"log/slog"
	"net/http"
)

// prefStore defines the minimal interface needed by PrefsHandler.
type prefStore interface {
	Theme() string
	WelcomeSeen() bool
	SetTheme(theme string) bool
	MarkWelcomeSeen() bool
	LastErr() string
}

// PrefsHandler serves UI preference REST endpoints.
type PrefsHandler struct {
	store prefStore
	log   *slog.Logger
}

// NewPrefsHandler creates a PrefsHandler.
func NewPrefsHandler(store prefStore, logger *slog.Logger) *PrefsHandler {
	return &PrefsHandler{store: store, log: logger.With("handler", "prefs")}
}

type prefsResponse struct {
	Theme       string `json:"theme"`
	WelcomeSeen bool   `json:"welcomeSeen"`
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

// Get handles GET /api/prefs.
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, prefsResponse{
		Theme:       h.store.Theme(),
		WelcomeSeen: h.store.WelcomeSeen(),
	})
}

// SetTheme handles PUT /api/prefs/theme.
func (h *PrefsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req setThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !h.store.SetTheme(req.Theme) {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusOK, prefsResponse{
		Theme:       h.store.Theme(),
		WelcomeSeen: h.store.WelcomeSeen(),
	})
}

// MarkWelcomeSeen handles POST /api/prefs/welcome.
func (h *PrefsHandler) MarkWelcomeSeen(w http.ResponseWriter, r *http.Request) {
	if !h.store.MarkWelcomeSeen() {
		h.storeError(w, r)
		return
	}

	writeJSON(w, http.StatusOK, prefsResponse{
		Theme:       h.store.Theme(),
		WelcomeSeen: h.store.WelcomeSeen(),
	})
}

func (h *PrefsHandler) storeError(w http.ResponseWriter, r *http.Request) {
	msg := h.store.LastErr()
	if msg == "unknown theme" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	h.log.ErrorContext(r.Context(), "prefs store error", slog.String("error", msg))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
