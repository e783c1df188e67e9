package records

import (
	"context"
	"errors"
	"time"

	"github.com/avoronkov/stridewell/internal/storage"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidValue = errors.New("invalid value")
	ErrInvalidRange = errors.New("invalid date range")
)

// Service validates and stores wellness records.
type Service struct {
	storage      storage.RecordsStorage
	maxListLimit int
}

func NewService(recordsStorage storage.RecordsStorage, maxListLimit int) *Service {
	if maxListLimit <= 0 {
		maxListLimit = 200
	}
	return &Service{
		storage:      recordsStorage,
		maxListLimit: maxListLimit,
	}
}

// Submit validates the payload and stores it. An unknown mood falls
// back to neutral; negative numeric values are rejected.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	recordedAt, err := parseRecordDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if req.SleepHours < 0 || req.WaterIntake < 0 || req.ScreenTime < 0 {
		return nil, ErrInvalidValue
	}

	mood := req.Mood
	switch mood {
	case "sad", "neutral", "happy":
	default:
		mood = "neutral"
	}

	row := &storage.WellnessRow{
		Name:            req.Name,
		RecordedAt:      recordedAt,
		SleepHours:      req.SleepHours,
		Mood:            mood,
		WaterGlasses:    req.WaterIntake,
		ScreenTimeHours: req.ScreenTime,
	}

	if err := s.storage.InsertRecord(ctx, row); err != nil {
		return nil, err
	}

	return &SubmitResponse{ID: row.ID.String(), Status: "ok"}, nil
}

// List returns records for a name within the optional [from, to] range.
func (s *Service) List(ctx context.Context, name, from, to string) (*ListResponse, error) {
	if from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if to != "" {
		if _, err := time.Parse("2006-01-02", to); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if from != "" && to != "" && from > to {
		return nil, ErrInvalidRange
	}

	rows, err := s.storage.ListRecords(ctx, name, from, to, s.maxListLimit)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{Records: make([]RecordDTO, 0, len(rows))}
	for _, row := range rows {
		resp.Records = append(resp.Records, toDTO(row))
	}
	return resp, nil
}

// Daily returns the aggregate for one name and day.
func (s *Service) Daily(ctx context.Context, name, date string) (*DailyResponse, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	summary, err := s.storage.GetDaily(ctx, name, date)
	if err != nil {
		return nil, err
	}

	return &DailyResponse{
		Name:              summary.Name,
		Date:              summary.Date,
		Records:           summary.Records,
		TotalWaterGlasses: summary.TotalWaterGlasses,
		MaxSleepHours:     summary.MaxSleepHours,
		MaxScreenTime:     summary.MaxScreenTime,
		LastMood:          summary.LastMood,
	}, nil
}

func toDTO(row storage.WellnessRow) RecordDTO {
	return RecordDTO{
		ID:          row.ID.String(),
		Name:        row.Name,
		Date:        row.RecordedAt.Format(time.RFC3339),
		SleepHours:  row.SleepHours,
		Mood:        row.Mood,
		WaterIntake: row.WaterGlasses,
		ScreenTime:  row.ScreenTimeHours,
	}
}

// parseRecordDate accepts a full RFC 3339 timestamp or a bare day.
func parseRecordDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
