package reports

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avoronkov/stridewell/internal/blob"
	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidDateRange = errors.New("from date must be before to date")
	ErrRangeTooLarge    = errors.New("date range too large")
	ErrNameRequired     = errors.New("name is required")
	ErrReportNotFound   = errors.New("report not found")
)

// Service handles report generation and artifact access.
type Service struct {
	reportsStorage  storage.ReportsStorage
	generator       *Generator
	blobStore       blob.Store
	maxRangeDays    int
	presignTTL      int
	localMode       bool // no blob store, artifact bytes stay inline
	publicBaseURL   string
	preferPublicURL bool
}

func NewService(
	reportsStorage storage.ReportsStorage,
	recordsStorage storage.RecordsStorage,
	blobStore blob.Store,
	maxRangeDays int,
	presignTTL int,
	publicBaseURL string,
	preferPublicURL bool,
) *Service {
	return &Service{
		reportsStorage:  reportsStorage,
		generator:       NewGenerator(recordsStorage),
		blobStore:       blobStore,
		maxRangeDays:    maxRangeDays,
		presignTTL:      presignTTL,
		localMode:       blobStore == nil,
		publicBaseURL:   publicBaseURL,
		preferPublicURL: preferPublicURL,
	}
}

// CreateReport validates the request, renders the artifact and stores
// it (inline in local mode, object storage otherwise).
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (*Report, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	fromDate, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}
	if int(toDate.Sub(fromDate).Hours()/24) > s.maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	data, err := s.generator.GenerateReport(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	report := &storage.ReportMeta{
		Name:      req.Name,
		Format:    req.Format,
		FromDate:  req.From,
		ToDate:    req.To,
		SizeBytes: int64(len(data)),
		Status:    StatusReady,
	}

	if s.localMode {
		report.Data = data
	} else {
		objectKey := fmt.Sprintf("reports/%s/%s_%s_%s.%s",
			req.Name, req.From, req.To, uuid.New().String(), req.Format)

		if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentTypeFor(req.Format)); err != nil {
			return nil, fmt.Errorf("failed to upload report artifact: %w", err)
		}
		report.ObjectKey = &objectKey
	}

	if err := s.reportsStorage.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return toReport(report), nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return nil, ErrReportNotFound
	}
	return toReport(meta), nil
}

func (s *Service) ListReports(ctx context.Context, name string, limit, offset int) ([]Report, error) {
	metaList, err := s.reportsStorage.ListReports(ctx, name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]Report, len(metaList))
	for i, meta := range metaList {
		reports[i] = *toReport(&meta)
	}
	return reports, nil
}

// DeleteReport removes the metadata row and, in object mode, the blob.
// Blob deletion failure is logged, not fatal.
func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return ErrReportNotFound
	}

	if !s.localMode && meta.ObjectKey != nil {
		if err := s.blobStore.DeleteObject(ctx, *meta.ObjectKey); err != nil {
			log.Printf("WARN reports: delete blob object %s: %v", *meta.ObjectKey, err)
		}
	}

	if err := s.reportsStorage.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report metadata: %w", err)
	}
	return nil
}

// GetReportDownloadURL returns a URL the client can fetch the artifact
// from: the local download endpoint, a public URL, or a presigned GET.
func (s *Service) GetReportDownloadURL(ctx context.Context, id uuid.UUID, baseURL string) (string, error) {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return "", ErrReportNotFound
	}

	if s.localMode {
		return fmt.Sprintf("%s/api/reports/%s/download", strings.TrimSuffix(baseURL, "/"), id.String()), nil
	}

	if meta.ObjectKey == nil {
		return "", fmt.Errorf("object key is missing")
	}

	if s.preferPublicURL && s.publicBaseURL != "" {
		return strings.TrimSuffix(s.publicBaseURL, "/") + "/" + *meta.ObjectKey, nil
	}

	presignedURL, err := s.blobStore.PresignGet(ctx, *meta.ObjectKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedURL, nil
}

// GetReportData returns the raw artifact bytes and content type.
func (s *Service) GetReportData(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return nil, "", ErrReportNotFound
	}

	contentType := contentTypeFor(meta.Format)

	if s.localMode {
		return meta.Data, contentType, nil
	}

	if meta.ObjectKey == nil {
		return nil, "", fmt.Errorf("object key is missing")
	}
	data, err := s.blobStore.GetObject(ctx, *meta.ObjectKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch report artifact: %w", err)
	}
	return data, contentType, nil
}

func contentTypeFor(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}

func toReport(meta *storage.ReportMeta) *Report {
	return &Report{
		ID:        meta.ID,
		Name:      meta.Name,
		Format:    meta.Format,
		FromDate:  meta.FromDate,
		ToDate:    meta.ToDate,
		ObjectKey: meta.ObjectKey,
		SizeBytes: meta.SizeBytes,
		Status:    meta.Status,
		Error:     meta.Error,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
		Data:      meta.Data,
	}
}
