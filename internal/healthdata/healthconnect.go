package healthdata

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Record is a single sample returned by the Android health bridge.
type Record struct {
	Value float64 `json:"value"`
}

// HealthConnectClient is the surface of the Android health bridge:
// client initialization, permission grant, and windowed record reads
// that the source reduces by summation.
type HealthConnectClient interface {
	Initialize(ctx context.Context) error
	RequestPermissions(ctx context.Context) error
	ReadRecords(ctx context.Context, recordType string, start, end time.Time) ([]Record, error)
}

const (
	recordTypeSteps    = "Steps"
	recordTypeFloors   = "FloorsClimbed"
	recordTypeDistance = "Distance"
)

// HealthConnectSource queries the Android bridge. The whole sequence
// (initialize, permissions, three reads) runs per date change; any
// failure leaves the previous snapshot untouched.
type HealthConnectSource struct {
	client HealthConnectClient

	mu   sync.Mutex
	last Snapshot
}

func NewHealthConnectSource(client HealthConnectClient) *HealthConnectSource {
	return &HealthConnectSource{client: client}
}

func (s *HealthConnectSource) Name() string { return "healthconnect" }

func (s *HealthConnectSource) Snapshot(ctx context.Context, date time.Time) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.query(ctx, date)
	if err != nil {
		return s.last, err
	}

	s.last = snap
	return snap, nil
}

func (s *HealthConnectSource) query(ctx context.Context, date time.Time) (Snapshot, error) {
	if err := s.client.Initialize(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("health connect initialize: %w", err)
	}
	if err := s.client.RequestPermissions(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("health connect permissions: %w", err)
	}

	start, end := dayBounds(date)

	steps, err := s.readSum(ctx, recordTypeSteps, start, end)
	if err != nil {
		return Snapshot{}, err
	}
	floors, err := s.readSum(ctx, recordTypeFloors, start, end)
	if err != nil {
		return Snapshot{}, err
	}
	distance, err := s.readSum(ctx, recordTypeDistance, start, end)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Date:           date,
		Steps:          int(steps),
		Flights:        int(floors),
		DistanceMeters: distance,
	}, nil
}

func (s *HealthConnectSource) readSum(ctx context.Context, recordType string, start, end time.Time) (float64, error) {
	records, err := s.client.ReadRecords(ctx, recordType, start, end)
	if err != nil {
		return 0, fmt.Errorf("health connect read %s: %w", recordType, err)
	}

	var total float64
	for _, r := range records {
		total += r.Value
	}
	return total, nil
}

// HealthConnectBridge implements HealthConnectClient over the local
// bridge daemon.
type HealthConnectBridge struct {
	bridge *bridgeClient
}

func NewHealthConnectBridge(baseURL string, timeout time.Duration) *HealthConnectBridge {
	return &HealthConnectBridge{bridge: newBridgeClient(baseURL, timeout)}
}

func (b *HealthConnectBridge) Initialize(ctx context.Context) error {
	return b.bridge.postJSON(ctx, "/v1/healthconnect/initialize", nil)
}

func (b *HealthConnectBridge) RequestPermissions(ctx context.Context) error {
	return b.bridge.postJSON(ctx, "/v1/healthconnect/permissions", nil)
}

func (b *HealthConnectBridge) ReadRecords(ctx context.Context, recordType string, start, end time.Time) ([]Record, error) {
	var out struct {
		Records []Record `json:"records"`
	}
	path := fmt.Sprintf("/v1/healthconnect/records?type=%s&start=%s&end=%s",
		recordType, start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	if err := b.bridge.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}
