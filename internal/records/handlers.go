package records

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronkov/stridewell/internal/storage"
)

// Handler holds the HTTP handlers for wellness records.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSubmit handles POST /api/health
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	resp, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			h.sendError(w, http.StatusBadRequest, "name_required", "name is required")
		case errors.Is(err, ErrInvalidDate):
			h.sendError(w, http.StatusBadRequest, "invalid_date", "Invalid date format")
		case errors.Is(err, ErrInvalidValue):
			h.sendError(w, http.StatusBadRequest, "invalid_value", "Negative values are not allowed")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to store record")
		}
		return
	}

	h.sendJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/health/records
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	resp, err := h.service.List(r.Context(), name, from, to)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			h.sendError(w, http.StatusBadRequest, "invalid_date", "Invalid date format")
		case errors.Is(err, ErrInvalidRange):
			h.sendError(w, http.StatusBadRequest, "invalid_range", "from must not be after to")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to list records")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleDaily handles GET /api/health/daily
func (h *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	date := r.URL.Query().Get("date")

	if name == "" || date == "" {
		h.sendError(w, http.StatusBadRequest, "missing_params", "Missing required parameters")
		return
	}

	resp, err := h.service.Daily(r.Context(), name, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			h.sendError(w, http.StatusBadRequest, "invalid_date", "Invalid date format")
		case errors.Is(err, storage.ErrNotFound):
			h.sendError(w, http.StatusNotFound, "not_found", "No records for this day")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to get daily summary")
		}
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
