package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/avoronkov/stridewell/internal/auth"
	"github.com/avoronkov/stridewell/internal/blob"
	"github.com/avoronkov/stridewell/internal/config"
	"github.com/avoronkov/stridewell/internal/records"
	"github.com/avoronkov/stridewell/internal/reports"
	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/avoronkov/stridewell/internal/storage/memory"
	"github.com/avoronkov/stridewell/internal/storage/postgres"
)

// Server is the collector HTTP server.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	recordsStorage storage.RecordsStorage
	reportsStorage storage.ReportsStorage
	closer         func() error
	authMiddleware *auth.Middleware
}

func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks Postgres when DATABASE_URL is set and reachable,
// otherwise falls back to in-memory storage.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("storage: using in-memory storage")
		mem := memory.New()
		s.recordsStorage = mem
		s.reportsStorage = mem
		return
	}

	log.Println("storage: connecting to PostgreSQL...")
	pg, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("storage: PostgreSQL connection failed: %v", err)
		log.Println("storage: falling back to in-memory storage")
		mem := memory.New()
		s.recordsStorage = mem
		s.reportsStorage = mem
		return
	}

	log.Println("storage: PostgreSQL connected")
	s.recordsStorage = pg.Records()
	s.reportsStorage = pg.Reports()
	s.closer = pg.Close
}

func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandler(s.config, authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /api/auth/dev - local dev token
	s.mux.HandleFunc("POST /api/auth/dev", authHandler.HandleDevAuth)

	// Wellness records API
	recordsService := records.NewService(s.recordsStorage, s.config.RecordsMaxListLimit)
	recordsHandler := records.NewHandler(recordsService)

	// POST /api/health - submit a wellness record
	s.mux.HandleFunc("POST /api/health", recordsHandler.HandleSubmit)

	// GET /api/health/records - list records
	s.mux.HandleFunc("GET /api/health/records", recordsHandler.HandleList)

	// GET /api/health/daily - daily aggregate
	s.mux.HandleFunc("GET /api/health/daily", recordsHandler.HandleDaily)

	// Reports API
	blobStore := s.initBlobStore()
	reportsService := reports.NewService(
		s.reportsStorage,
		s.recordsStorage,
		blobStore,
		s.config.ReportsMaxRangeDays,
		s.config.Blob.S3.PresignTTLSeconds,
		s.config.Blob.S3.PublicBaseURL,
		s.config.Blob.S3.PreferPublicURL,
	)
	reportsHandler := reports.NewHandler(reportsService)

	s.mux.HandleFunc("POST /api/reports", reportsHandler.HandleCreate)
	s.mux.HandleFunc("GET /api/reports", reportsHandler.HandleList)
	s.mux.HandleFunc("GET /api/reports/{id}/download", reportsHandler.HandleDownload)
	s.mux.HandleFunc("GET /api/reports/{id}/url", reportsHandler.HandleDownloadURL)
	s.mux.HandleFunc("DELETE /api/reports/{id}", reportsHandler.HandleDelete)
}

func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing report artifact store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize store: %v", err)
	}
	log.Printf("INFO blob: report artifact mode: %s", mode)
	return store
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler builds the full middleware chain (outermost first):
// CORS, rate limit, auth, router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != config.AuthModeNone {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start runs the HTTP server. Blocks until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("collector listening on http://localhost%s\n", addr)
	log.Printf("health check: http://localhost%s/healthz\n", addr)
	log.Printf("records API: http://localhost%s/api/health\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close releases storage resources.
func (s *Server) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
