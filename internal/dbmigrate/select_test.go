package dbmigrate

import (
	"testing"

	"github.com/avoronkov/stridewell/internal/config"
)

func TestSelectDatabaseURL(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantURL     string
		wantSource  string
		wantWarning bool
	}{
		{
			name: "direct wins over everything",
			cfg: config.Config{
				DatabaseURLDirect: "postgres://direct",
				DatabaseURLRaw:    "postgres://url",
				DatabaseURLPooled: "postgres://pooled",
			},
			wantURL:    "postgres://direct",
			wantSource: "DATABASE_URL_DIRECT",
		},
		{
			name: "plain URL next",
			cfg: config.Config{
				DatabaseURLRaw:    "postgres://url",
				DatabaseURLPooled: "postgres://pooled",
			},
			wantURL:    "postgres://url",
			wantSource: "DATABASE_URL",
		},
		{
			name:        "pooled last with warning",
			cfg:         config.Config{DatabaseURLPooled: "postgres://pooled"},
			wantURL:     "postgres://pooled",
			wantSource:  "DATABASE_URL_POOLED",
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbURL, source, warning, err := SelectDatabaseURL(&tt.cfg, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dbURL != tt.wantURL || source != tt.wantSource {
				t.Fatalf("got dbURL=%q source=%q, want %q from %q", dbURL, source, tt.wantURL, tt.wantSource)
			}
			if (warning != "") != tt.wantWarning {
				t.Fatalf("warning = %q, wantWarning = %t", warning, tt.wantWarning)
			}
		})
	}
}

func TestSelectDatabaseURLRequireDirect(t *testing.T) {
	cfg := &config.Config{
		DatabaseURLRaw:    "postgres://url",
		DatabaseURLPooled: "postgres://pooled",
	}

	if _, _, _, err := SelectDatabaseURL(cfg, true); err == nil {
		t.Fatal("expected error when direct is required but missing")
	}
}

func TestSelectDatabaseURLNoneConfigured(t *testing.T) {
	if _, _, _, err := SelectDatabaseURL(&config.Config{}, false); err == nil {
		t.Fatal("expected error when no URL is configured")
	}
}
