package healthdata

import (
	"context"
	"log"
	"time"

	"github.com/avoronkov/stridewell/internal/config"
)

// NewSource selects the metrics source by cfg.HealthSource. The choice
// is made once; callers hold the returned Source for the process
// lifetime. In auto mode the bridge is probed for its platform and
// sandbox is used when no bridge is reachable.
func NewSource(cfg *config.Config) Source {
	timeout := time.Duration(cfg.HealthBridgeTimeoutSeconds) * time.Second

	switch cfg.HealthSource {
	case config.HealthSourceSandbox:
		return NewSandboxSource()
	case config.HealthSourceHealthKit:
		return NewHealthKitSource(NewHealthKitBridge(cfg.HealthBridgeURL, timeout))
	case config.HealthSourceHealthConnect:
		return NewHealthConnectSource(NewHealthConnectBridge(cfg.HealthBridgeURL, timeout))
	default: // auto
		if cfg.HealthBridgeURL == "" {
			return NewSandboxSource()
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		platform, err := newBridgeClient(cfg.HealthBridgeURL, timeout).Platform(ctx)
		if err != nil {
			log.Printf("WARN healthdata: bridge unreachable (%v), fallback to sandbox", err)
			return NewSandboxSource()
		}

		switch platform {
		case "ios":
			return NewHealthKitSource(NewHealthKitBridge(cfg.HealthBridgeURL, timeout))
		case "android":
			return NewHealthConnectSource(NewHealthConnectBridge(cfg.HealthBridgeURL, timeout))
		default:
			log.Printf("WARN healthdata: unknown bridge platform %q, fallback to sandbox", platform)
			return NewSandboxSource()
		}
	}
}
