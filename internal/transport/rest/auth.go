package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/studybuddy/backend/internal/domain"
)

// passcodeGate defines the minimal interface needed by AuthHandler.
type passcodeGate interface {
	Unlock(passcode string) (string, error)
}

// AuthHandler serves the passcode unlock endpoint.
type AuthHandler struct {
	gate passcodeGate
	log  *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(gate passcodeGate, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, log: logger.With("handler", "auth")}
}

type unlockRequest struct {
	Passcode string `json:"passcode"`
}

type unlockResponse struct {
	Token string `json:"token"`
}

// Unlock handles POST /api/unlock.
func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.gate.Unlock(req.Passcode)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "incorrect passcode")
			return
		}
		h.log.ErrorContext(r.Context(), "unlock failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{Token: token})
}
