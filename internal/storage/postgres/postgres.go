package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage is the Postgres implementation of the records and reports
// storage interfaces, backed by a single pgx pool.
type Storage struct {
	pool    *pgxpool.Pool
	records *RecordsStorage
	reports *ReportsStorage
}

// New connects to the database and pings it before returning.
func New(ctx context.Context, databaseURL string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		pool:    pool,
		records: NewRecordsStorage(pool),
		reports: NewReportsStorage(pool),
	}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Records returns the records storage.
func (s *Storage) Records() *RecordsStorage { return s.records }

// Reports returns the reports storage.
func (s *Storage) Reports() *ReportsStorage { return s.reports }
