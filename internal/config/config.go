package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

// Health source modes. "auto" resolves to sandbox unless a bridge URL is set.
const (
	HealthSourceAuto          = "auto"
	HealthSourceSandbox       = "sandbox"
	HealthSourceHealthKit     = "healthkit"
	HealthSourceHealthConnect = "healthconnect"
)

// Auth modes. "dev" enables the POST /api/auth/dev token endpoint.
const (
	AuthModeNone = "none"
	AuthModeDev  = "dev"
)

// Keystore modes. "auto" prefers the OS keyring and falls back to file.
const (
	KeystoreModeAuto    = "auto"
	KeystoreModeKeyring = "keyring"
	KeystoreModeFile    = "file"
	KeystoreModeMemory  = "memory"
)

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	PresignTTLSeconds int
	PreferPublicURL   bool
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 6)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	if strings.TrimSpace(c.PublicBaseURL) == "" {
		missing = append(missing, "S3_PUBLIC_BASE_URL")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	allEmpty := strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == "" &&
		strings.TrimSpace(c.PublicBaseURL) == ""

	if allEmpty {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a detailed summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	accessKeyStatus := "not set"
	if strings.TrimSpace(c.AccessKeyID) != "" {
		accessKeyStatus = "set"
	}
	secretKeyStatus := "not set"
	if strings.TrimSpace(c.SecretAccessKey) != "" {
		secretKeyStatus = "set"
	}

	return fmt.Sprintf("endpoint=%s region=%s bucket=%s public_base_url=%s presign_ttl=%ds prefer_public_url=%t access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		nonEmptyOrDash(c.PublicBaseURL),
		c.PresignTTLSeconds,
		c.PreferPublicURL,
		accessKeyStatus,
		secretKeyStatus,
	)
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

type BlobConfig struct {
	Mode string // local|s3|auto
	S3   S3Config
}

// Config holds the resolved configuration for the collector API and the
// device agent. Both read the same env surface; each uses the fields it needs.
type Config struct {
	Env      string // local | staging | production
	Port     int
	LogLevel string

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Blob storage for report artifacts
	Blob BlobConfig

	// Reports
	ReportsMaxRangeDays int

	// Records
	RecordsMaxListLimit int

	// Authentication
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Health metrics source (agent)
	HealthSource               string // auto | sandbox | healthkit | healthconnect
	HealthBridgeURL            string // local bridge daemon; empty means no native access
	HealthBridgeTimeoutSeconds int

	// Wellness tracker (agent)
	CollectorURL string // base URL of the collector API
	AccountEmail string // signed-in account; display name = local part

	// Keystore (agent)
	KeystoreMode string // auto | keyring | file | memory
	KeystoreFile string // path for the file backend

	// Migrations
	RunMigrationsOnStartup bool
}

// Load reads the configuration from environment variables.
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8080)
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	// LOG_LEVEL (default: debug)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Migrations ----------
	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	// ---------- CORS ----------
	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := os.Getenv("CORS_ALLOW_CREDENTIALS") == "1"

	// ---------- Rate Limiting ----------
	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	// ---------- Blob / S3 ----------
	blobMode := parseMode("BLOB_MODE", BlobModeLocal,
		BlobModeLocal, BlobModeS3, BlobModeAuto)

	// S3_PRESIGN_TTL_SECONDS (default: 900, enforce > 0)
	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	s3Cfg := S3Config{
		Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
		Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
		AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
		PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
		PresignTTLSeconds: s3PresignTTL,
		PreferPublicURL:   parseBoolEnv("S3_PREFER_PUBLIC_URL"),
	}

	// REPORTS_MAX_RANGE_DAYS (default: 90)
	reportsMaxRangeDays := envInt("REPORTS_MAX_RANGE_DAYS", 90)
	if reportsMaxRangeDays <= 0 {
		reportsMaxRangeDays = 90
	}

	// RECORDS_MAX_LIST_LIMIT (default: 200)
	recordsMaxListLimit := envInt("RECORDS_MAX_LIST_LIMIT", 200)
	if recordsMaxListLimit <= 0 {
		recordsMaxListLimit = 200
	}

	// ---------- Auth ----------
	authMode := parseMode("AUTH_MODE", AuthModeNone, AuthModeNone, AuthModeDev)
	authRequired := authMode != AuthModeNone && parseBoolEnv("AUTH_REQUIRED")

	// JWT_SECRET
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	// Warn if using default in non-local environment
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARNING: JWT_SECRET is set to 'change_me' in non-local environment!")
	}

	// JWT_ISSUER (default: "stridewell")
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "stridewell"
	}

	// JWT_TTL_MINUTES (default: 10080 = 7 days)
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)

	// ---------- Health metrics source ----------
	healthSource := parseMode("HEALTH_SOURCE", HealthSourceAuto,
		HealthSourceAuto, HealthSourceSandbox, HealthSourceHealthKit, HealthSourceHealthConnect)

	healthBridgeURL := strings.TrimSpace(os.Getenv("HEALTH_BRIDGE_URL"))

	healthBridgeTimeout := envInt("HEALTH_BRIDGE_TIMEOUT_SECONDS", 10)
	if healthBridgeTimeout <= 0 {
		healthBridgeTimeout = 10
	}

	// ---------- Wellness tracker ----------
	collectorURL := strings.TrimSpace(os.Getenv("COLLECTOR_URL"))
	if collectorURL == "" {
		collectorURL = fmt.Sprintf("http://localhost:%d", port)
	}

	accountEmail := strings.TrimSpace(os.Getenv("ACCOUNT_EMAIL"))

	// ---------- Keystore ----------
	keystoreMode := parseMode("KEYSTORE_MODE", KeystoreModeAuto,
		KeystoreModeAuto, KeystoreModeKeyring, KeystoreModeFile, KeystoreModeMemory)

	keystoreFile := strings.TrimSpace(os.Getenv("KEYSTORE_FILE"))
	if keystoreFile == "" {
		keystoreFile = defaultKeystorePath()
	}

	return &Config{
		Env:               env,
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		Blob: BlobConfig{Mode: blobMode, S3: s3Cfg},

		ReportsMaxRangeDays: reportsMaxRangeDays,
		RecordsMaxListLimit: recordsMaxListLimit,

		AuthMode:      authMode,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		HealthSource:               healthSource,
		HealthBridgeURL:            healthBridgeURL,
		HealthBridgeTimeoutSeconds: healthBridgeTimeout,

		CollectorURL: collectorURL,
		AccountEmail: accountEmail,

		KeystoreMode: keystoreMode,
		KeystoreFile: keystoreFile,

		RunMigrationsOnStartup: runMigrationsOnStartup,
	}
}

func defaultKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stridewell/keystore.json"
	}
	return home + "/.stridewell/keystore.json"
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:8081"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// parseMode reads a mode-string env var, falling back with a warning on
// unknown values.
func parseMode(key string, defaultVal string, allowed ...string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	for _, a := range allowed {
		if mode == a {
			return mode
		}
	}
	log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
	return defaultVal
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
