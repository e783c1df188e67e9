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

// ReportsStorage is the Postgres implementation of storage.ReportsStorage.
// Inline Data bytes are never persisted; Postgres mode always pairs with
// the S3 blob store.
type ReportsStorage struct {
	pool *pgxpool.Pool
}

func NewReportsStorage(pool *pgxpool.Pool) *ReportsStorage {
	return &ReportsStorage{pool: pool}
}

func (p *ReportsStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	query := `
		INSERT INTO reports (id, name, format, from_date, to_date, object_key, size_bytes, status, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := p.pool.Exec(ctx, query,
		report.ID, report.Name, report.Format, report.FromDate, report.ToDate,
		report.ObjectKey, report.SizeBytes, report.Status, report.Error,
		report.CreatedAt, report.UpdatedAt)
	return err
}

func (p *ReportsStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	query := `
		SELECT id, name, format, from_date, to_date, object_key, size_bytes, status, error, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var report storage.ReportMeta
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Name, &report.Format, &report.FromDate, &report.ToDate,
		&report.ObjectKey, &report.SizeBytes, &report.Status, &report.Error,
		&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &report, nil
}

func (p *ReportsStorage) ListReports(ctx context.Context, name string, limit, offset int) ([]storage.ReportMeta, error) {
	query := `
		SELECT id, name, format, from_date, to_date, object_key, size_bytes, status, error, created_at, updated_at
		FROM reports
		WHERE ($1 = '' OR name = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.pool.Query(ctx, query, name, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []storage.ReportMeta
	for rows.Next() {
		var report storage.ReportMeta
		err := rows.Scan(
			&report.ID, &report.Name, &report.Format, &report.FromDate, &report.ToDate,
			&report.ObjectKey, &report.SizeBytes, &report.Status, &report.Error,
			&report.CreatedAt, &report.UpdatedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, report)
	}

	return results, rows.Err()
}

func (p *ReportsStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
