package healthdata

import (
	"context"
	"time"
)

// SandboxSource derives deterministic metrics from the date itself.
// No device access, no I/O; the same date always yields the same values.
type SandboxSource struct{}

func NewSandboxSource() *SandboxSource {
	return &SandboxSource{}
}

func (s *SandboxSource) Name() string { return "sandbox" }

func (s *SandboxSource) Snapshot(_ context.Context, date time.Time) (Snapshot, error) {
	hash := date.Day() + int(date.Month())

	return Snapshot{
		Date:           date,
		Steps:          5000 + hash*500,
		Flights:        10 + hash%10,
		DistanceMeters: float64(3500 + hash*200),
	}, nil
}
