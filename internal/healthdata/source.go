package healthdata

import (
	"context"
	"time"
)

// Snapshot holds the daily activity metrics for a single calendar date.
type Snapshot struct {
	Date           time.Time `json:"date"`
	Steps          int       `json:"steps"`
	Flights        int       `json:"flights"`
	DistanceMeters float64   `json:"distanceMeters"`
}

// Source produces activity metrics for a given date. Implementations are
// selected once at startup and stay fixed for the process lifetime.
type Source interface {
	Snapshot(ctx context.Context, date time.Time) (Snapshot, error)
	Name() string
}

// dayBounds returns the inclusive window [00:00:00.000, 23:59:59.999]
// of the date in its own location.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	loc := date.Location()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}
