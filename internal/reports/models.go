package reports

import (
	"time"

	"github.com/google/uuid"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// CreateReportRequest is the payload for POST /api/reports.
type CreateReportRequest struct {
	Name   string `json:"name"`
	From   string `json:"from"` // YYYY-MM-DD
	To     string `json:"to"`   // YYYY-MM-DD
	Format string `json:"format"`
}

// Report is the API view of a report artifact.
type Report struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	FromDate  string    `json:"from"`
	ToDate    string    `json:"to"`
	ObjectKey *string   `json:"objectKey,omitempty"`
	SizeBytes int64     `json:"sizeBytes"`
	Status    string    `json:"status"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Data carries the artifact bytes in local blob mode; never serialized.
	Data []byte `json:"-"`
}

type ListReportsResponse struct {
	Reports []Report `json:"reports"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
