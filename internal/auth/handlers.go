package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronkov/stridewell/internal/config"
)

// Handler holds the HTTP handlers for auth.
type Handler struct {
	config  *config.Config
	service *Service
}

func NewHandler(cfg *config.Config, service *Service) *Handler {
	return &Handler{
		config:  cfg,
		service: service,
	}
}

// HandleDevAuth handles POST /api/auth/dev
func (h *Handler) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	if h.config.AuthMode != config.AuthModeDev {
		h.sendError(w, http.StatusNotFound, "not_found", "Dev auth is disabled")
		return
	}

	var req DevAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	resp, err := h.service.SignInDev(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			h.sendError(w, http.StatusBadRequest, "invalid_email", "A valid email is required")
			return
		}
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to issue token")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
