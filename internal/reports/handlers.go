package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Handler holds the HTTP handlers for reports.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/reports
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	report, err := h.service.CreateReport(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			h.sendError(w, http.StatusBadRequest, "name_required", "name is required")
		case errors.Is(err, ErrInvalidFormat):
			h.sendError(w, http.StatusBadRequest, "invalid_format", "Format must be 'pdf' or 'csv'")
		case errors.Is(err, ErrInvalidDate):
			h.sendError(w, http.StatusBadRequest, "invalid_date", "Invalid date format")
		case errors.Is(err, ErrInvalidDateRange):
			h.sendError(w, http.StatusBadRequest, "invalid_range", "from must not be after to")
		case errors.Is(err, ErrRangeTooLarge):
			h.sendError(w, http.StatusBadRequest, "range_too_large", "Date range exceeds the maximum")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to create report")
		}
		return
	}

	h.sendJSON(w, http.StatusCreated, report)
}

// HandleList handles GET /api/reports
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	reports, err := h.service.ListReports(r.Context(), name, limit, offset)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to list reports")
		return
	}

	h.sendJSON(w, http.StatusOK, ListReportsResponse{Reports: reports})
}

// HandleDownload handles GET /api/reports/{id}/download
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	data, contentType, err := h.service.GetReportData(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			h.sendError(w, http.StatusNotFound, "report_not_found", "Report not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch report")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleDownloadURL handles GET /api/reports/{id}/url
func (h *Handler) HandleDownloadURL(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	baseURL := "http://" + r.Host
	if r.TLS != nil {
		baseURL = "https://" + r.Host
	}

	url, err := h.service.GetReportDownloadURL(r.Context(), id, baseURL)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			h.sendError(w, http.StatusNotFound, "report_not_found", "Report not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to build download URL")
		return
	}

	h.sendJSON(w, http.StatusOK, DownloadURLResponse{URL: url})
}

// HandleDelete handles DELETE /api/reports/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	if err := h.service.DeleteReport(r.Context(), id); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			h.sendError(w, http.StatusNotFound, "report_not_found", "Report not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
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
