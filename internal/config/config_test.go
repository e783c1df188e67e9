package config

import "testing"

func TestS3ConfigIsConfigured(t *testing.T) {
	t.Run("empty config is not configured", func(t *testing.T) {
		cfg := S3Config{}
		if cfg.IsConfigured() {
			t.Fatal("expected IsConfigured=false for empty config")
		}
	})

	t.Run("required fields set is configured", func(t *testing.T) {
		cfg := S3Config{
			Endpoint:        "https://s3.eu-central-1.amazonaws.com",
			Region:          "eu-central-1",
			Bucket:          "stridewell-reports",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			PublicBaseURL:   "https://cdn.example.com/reports",
		}
		if !cfg.IsConfigured() {
			t.Fatal("expected IsConfigured=true when all required fields are set")
		}
	})
}

func TestS3ConfigMissingRequired(t *testing.T) {
	cfg := S3Config{
		Endpoint: "https://s3.eu-central-1.amazonaws.com",
		Bucket:   "stridewell-reports",
	}
	missing := cfg.MissingRequired()

	want := []string{"S3_REGION", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL"}
	if len(missing) != len(want) {
		t.Fatalf("expected %d missing fields, got %d (%v)", len(want), len(missing), missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected missing[%d]=%s, got %s", i, want[i], missing[i])
		}
	}
}

func TestS3ConfigDiagnostics(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		level, code, _ := (S3Config{}).Diagnostics()
		if level != "INFO" || code != "s3_not_configured" {
			t.Fatalf("expected INFO/s3_not_configured, got %s/%s", level, code)
		}
	})

	t.Run("partial config", func(t *testing.T) {
		level, code, _ := (S3Config{Endpoint: "https://s3.eu-central-1.amazonaws.com"}).Diagnostics()
		if level != "WARN" || code != "s3_partial_config" {
			t.Fatalf("expected WARN/s3_partial_config, got %s/%s", level, code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		level, code, _ := (S3Config{
			Endpoint:        "https://s3.eu-central-1.amazonaws.com",
			Region:          "eu-central-1",
			Bucket:          "stridewell-reports",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			PublicBaseURL:   "https://cdn.example.com/reports",
		}).Diagnostics()
		if level != "INFO" || code != "s3_ready" {
			t.Fatalf("expected INFO/s3_ready, got %s/%s", level, code)
		}
	})
}

func TestParseModeFallsBackOnUnknown(t *testing.T) {
	t.Setenv("HEALTH_SOURCE", "fitbit")
	got := parseMode("HEALTH_SOURCE", HealthSourceAuto,
		HealthSourceAuto, HealthSourceSandbox, HealthSourceHealthKit, HealthSourceHealthConnect)
	if got != HealthSourceAuto {
		t.Fatalf("expected fallback to auto, got %q", got)
	}

	t.Setenv("HEALTH_SOURCE", "SANDBOX")
	got = parseMode("HEALTH_SOURCE", HealthSourceAuto,
		HealthSourceAuto, HealthSourceSandbox, HealthSourceHealthKit, HealthSourceHealthConnect)
	if got != HealthSourceSandbox {
		t.Fatalf("expected case-insensitive sandbox, got %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "ENV", "PORT", "AUTH_MODE", "AUTH_REQUIRED",
		"HEALTH_SOURCE", "KEYSTORE_MODE", "COLLECTOR_URL", "BLOB_MODE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.AuthMode != AuthModeNone || cfg.AuthRequired {
		t.Errorf("auth defaults = %s/%t, want none/false", cfg.AuthMode, cfg.AuthRequired)
	}
	if cfg.HealthSource != HealthSourceAuto {
		t.Errorf("HealthSource = %q, want auto", cfg.HealthSource)
	}
	if cfg.KeystoreMode != KeystoreModeAuto {
		t.Errorf("KeystoreMode = %q, want auto", cfg.KeystoreMode)
	}
	if cfg.CollectorURL != "http://localhost:8080" {
		t.Errorf("CollectorURL = %q, want http://localhost:8080", cfg.CollectorURL)
	}
	if cfg.ReportsMaxRangeDays != 90 || cfg.RecordsMaxListLimit != 200 {
		t.Errorf("limits = %d/%d, want 90/200", cfg.ReportsMaxRangeDays, cfg.RecordsMaxListLimit)
	}
}

func TestDatabaseURLPriority(t *testing.T) {
	t.Setenv("DATABASE_URL_POOLED", "postgres://pooled")
	t.Setenv("DATABASE_URL", "postgres://plain")
	t.Setenv("DATABASE_URL_DIRECT", "postgres://direct")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://pooled" {
		t.Errorf("DatabaseURL = %q, want pooled to win", cfg.DatabaseURL)
	}

	t.Setenv("DATABASE_URL_POOLED", "")
	cfg = Load()
	if cfg.DatabaseURL != "postgres://plain" {
		t.Errorf("DatabaseURL = %q, want DATABASE_URL next", cfg.DatabaseURL)
	}
}
