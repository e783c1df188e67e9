package healthdata

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// HealthKitClient is the surface of the iOS health bridge that the
// HealthKit source needs: a one-time read authorization plus three
// independent daily-total queries.
type HealthKitClient interface {
	RequestAuthorization(ctx context.Context) error
	StepCount(ctx context.Context, date time.Time) (int, error)
	FlightsClimbed(ctx context.Context, date time.Time) (int, error)
	DistanceWalkingRunning(ctx context.Context, date time.Time) (float64, error)
}

// HealthKitSource queries the iOS bridge for daily totals. Authorization
// is requested once; each date change re-runs the three metric queries
// independently, so one failing metric never discards the others.
type HealthKitSource struct {
	client HealthKitClient

	mu         sync.Mutex
	authorized bool
	last       Snapshot
}

func NewHealthKitSource(client HealthKitClient) *HealthKitSource {
	return &HealthKitSource{client: client}
}

func (s *HealthKitSource) Name() string { return "healthkit" }

func (s *HealthKitSource) Snapshot(ctx context.Context, date time.Time) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authorized {
		if err := s.client.RequestAuthorization(ctx); err != nil {
			return s.last, fmt.Errorf("healthkit authorization: %w", err)
		}
		s.authorized = true
	}

	snap := s.last
	snap.Date = date

	if steps, err := s.client.StepCount(ctx, date); err != nil {
		log.Printf("WARN healthkit: step count query failed: %v", err)
	} else {
		snap.Steps = steps
	}

	if flights, err := s.client.FlightsClimbed(ctx, date); err != nil {
		log.Printf("WARN healthkit: flights climbed query failed: %v", err)
	} else {
		snap.Flights = flights
	}

	if distance, err := s.client.DistanceWalkingRunning(ctx, date); err != nil {
		log.Printf("WARN healthkit: distance query failed: %v", err)
	} else {
		snap.DistanceMeters = distance
	}

	s.last = snap
	return snap, nil
}

// HealthKitBridge implements HealthKitClient over the local bridge daemon.
type HealthKitBridge struct {
	bridge *bridgeClient
}

func NewHealthKitBridge(baseURL string, timeout time.Duration) *HealthKitBridge {
	return &HealthKitBridge{bridge: newBridgeClient(baseURL, timeout)}
}

func (b *HealthKitBridge) RequestAuthorization(ctx context.Context) error {
	return b.bridge.postJSON(ctx, "/v1/healthkit/authorize", nil)
}

func (b *HealthKitBridge) StepCount(ctx context.Context, date time.Time) (int, error) {
	var out struct {
		Value float64 `json:"value"`
	}
	if err := b.bridge.getJSON(ctx, "/v1/healthkit/steps?date="+date.Format("2006-01-02"), &out); err != nil {
		return 0, err
	}
	return int(out.Value), nil
}

func (b *HealthKitBridge) FlightsClimbed(ctx context.Context, date time.Time) (int, error) {
	var out struct {
		Value float64 `json:"value"`
	}
	if err := b.bridge.getJSON(ctx, "/v1/healthkit/flights?date="+date.Format("2006-01-02"), &out); err != nil {
		return 0, err
	}
	return int(out.Value), nil
}

func (b *HealthKitBridge) DistanceWalkingRunning(ctx context.Context, date time.Time) (float64, error) {
	var out struct {
		Value float64 `json:"value"`
	}
	if err := b.bridge.getJSON(ctx, "/v1/healthkit/distance?date="+date.Format("2006-01-02"), &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}
