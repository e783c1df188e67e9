package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
)

// WellnessRow is a stored wellness record as submitted by the tracker.
type WellnessRow struct {
	ID              uuid.UUID
	Name            string
	RecordedAt      time.Time
	SleepHours      int
	Mood            string // sad | neutral | happy
	WaterGlasses    int
	ScreenTimeHours float64
	CreatedAt       time.Time
}

// Date returns the calendar day of the record as YYYY-MM-DD.
func (r WellnessRow) Date() string {
	return r.RecordedAt.Format("2006-01-02")
}

// DailySummary aggregates one person's records for one day.
type DailySummary struct {
	Name              string
	Date              string // YYYY-MM-DD
	Records           int
	TotalWaterGlasses int
	MaxSleepHours     int
	MaxScreenTime     float64
	LastMood          string
}

// RecordsStorage stores wellness records.
type RecordsStorage interface {
	// InsertRecord stores a new wellness record.
	InsertRecord(ctx context.Context, row *WellnessRow) error

	// ListRecords returns records for a name within [from, to]
	// (YYYY-MM-DD, empty bound = open), newest last, capped at limit.
	ListRecords(ctx context.Context, name, from, to string, limit int) ([]WellnessRow, error)

	// GetDaily returns the aggregate for one name and day.
	// ErrNotFound when the day has no records.
	GetDaily(ctx context.Context, name, date string) (*DailySummary, error)
}

// ReportMeta holds export artifact metadata.
type ReportMeta struct {
	ID        uuid.UUID
	Name      string
	Format    string // "pdf" or "csv"
	FromDate  string // YYYY-MM-DD
	ToDate    string // YYYY-MM-DD
	ObjectKey *string // blob object key (nil for inline data)
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      []byte // inline artifact bytes (memory blob mode only, not stored in DB)
}

// ReportsStorage stores report metadata.
type ReportsStorage interface {
	// CreateReport stores a new report (metadata + optional inline data).
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport returns a report by ID. ErrNotFound when missing.
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports returns reports for a name with pagination, newest first.
	ListReports(ctx context.Context, name string, limit, offset int) ([]ReportMeta, error)

	// DeleteReport removes a report row. ErrNotFound when missing.
	DeleteReport(ctx context.Context, id uuid.UUID) error
}
