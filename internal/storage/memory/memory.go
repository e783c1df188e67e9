package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/google/uuid"
)

// Storage is the in-memory implementation used when no DATABASE_URL is
// configured or the database is unreachable at startup.
type Storage struct {
	mu      sync.RWMutex
	records []storage.WellnessRow
	reports map[uuid.UUID]storage.ReportMeta
}

func New() *Storage {
	return &Storage{
		reports: make(map[uuid.UUID]storage.ReportMeta),
	}
}

func (s *Storage) Close() error { return nil }

func (s *Storage) InsertRecord(ctx context.Context, row *storage.WellnessRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	s.records = append(s.records, *row)
	return nil
}

func (s *Storage) ListRecords(ctx context.Context, name, from, to string, limit int) ([]storage.WellnessRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(name, from, to, limit), nil
}

func (s *Storage) listLocked(name, from, to string, limit int) []storage.WellnessRow {
	var results []storage.WellnessRow
	for _, row := range s.records {
		if name != "" && row.Name != name {
			continue
		}
		d := row.Date()
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		results = append(results, row)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RecordedAt.Before(results[j].RecordedAt)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (s *Storage) GetDaily(ctx context.Context, name, date string) (*storage.DailySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.listLocked(name, date, date, 0)
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	summary := &storage.DailySummary{
		Name: name,
		Date: date,
	}
	for _, row := range rows {
		summary.Records++
		summary.TotalWaterGlasses += row.WaterGlasses
		if row.SleepHours > summary.MaxSleepHours {
			summary.MaxSleepHours = row.SleepHours
		}
		if row.ScreenTimeHours > summary.MaxScreenTime {
			summary.MaxScreenTime = row.ScreenTimeHours
		}
		summary.LastMood = row.Mood
	}
	return summary, nil
}

func (s *Storage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	s.reports[report.ID] = *report
	return nil
}

func (s *Storage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &report, nil
}

func (s *Storage) ListReports(ctx context.Context, name string, limit, offset int) ([]storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []storage.ReportMeta
	for _, report := range s.reports {
		if name != "" && report.Name != name {
			continue
		}
		results = append(results, report)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(results) {
			return nil, nil
		}
		results = results[offset:]
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Storage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
