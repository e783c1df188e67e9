package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordsStorage is the Postgres implementation of storage.RecordsStorage.
type RecordsStorage struct {
	pool *pgxpool.Pool
}

func NewRecordsStorage(pool *pgxpool.Pool) *RecordsStorage {
	return &RecordsStorage{pool: pool}
}

func (p *RecordsStorage) InsertRecord(ctx context.Context, row *storage.WellnessRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO wellness_records (id, name, recorded_at, sleep_hours, mood, water_glasses, screen_time_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		row.ID, row.Name, row.RecordedAt, row.SleepHours, row.Mood, row.WaterGlasses, row.ScreenTimeHours, row.CreatedAt)
	return err
}

func (p *RecordsStorage) ListRecords(ctx context.Context, name, from, to string, limit int) ([]storage.WellnessRow, error) {
	query := `
		SELECT id, name, recorded_at, sleep_hours, mood, water_glasses, screen_time_hours, created_at
		FROM wellness_records
		WHERE ($1 = '' OR name = $1)
		  AND ($2 = '' OR date(recorded_at) >= $2::date)
		  AND ($3 = '' OR date(recorded_at) <= $3::date)
		ORDER BY recorded_at ASC
		LIMIT NULLIF($4, 0)
	`

	rows, err := p.pool.Query(ctx, query, name, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []storage.WellnessRow
	for rows.Next() {
		var row storage.WellnessRow
		err := rows.Scan(&row.ID, &row.Name, &row.RecordedAt, &row.SleepHours, &row.Mood, &row.WaterGlasses, &row.ScreenTimeHours, &row.CreatedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func (p *RecordsStorage) GetDaily(ctx context.Context, name, date string) (*storage.DailySummary, error) {
	query := `
		SELECT count(*),
		       coalesce(sum(water_glasses), 0),
		       coalesce(max(sleep_hours), 0),
		       coalesce(max(screen_time_hours), 0),
		       coalesce((array_agg(mood ORDER BY recorded_at DESC))[1], '')
		FROM wellness_records
		WHERE name = $1 AND date(recorded_at) = $2::date
	`

	summary := &storage.DailySummary{Name: name, Date: date}
	err := p.pool.QueryRow(ctx, query, name, date).Scan(
		&summary.Records, &summary.TotalWaterGlasses, &summary.MaxSleepHours, &summary.MaxScreenTime, &summary.LastMood)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if summary.Records == 0 {
		return nil, storage.ErrNotFound
	}

	return summary, nil
}
