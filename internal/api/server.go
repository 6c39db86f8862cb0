// Package api serves the reference engine over HTTP: single and batch
// reference resolution, text rewriting, canon listings, asynchronous
// batch jobs and a WebSocket channel for live rewriting and job progress.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/FocuswithJustin/ScriptureLinks/core/cache"
	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
	"github.com/FocuswithJustin/ScriptureLinks/core/reference"
	"github.com/FocuswithJustin/ScriptureLinks/core/textscan"
	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
	"github.com/FocuswithJustin/ScriptureLinks/internal/server"
	"github.com/FocuswithJustin/ScriptureLinks/internal/validation"
)

// Server holds the engine and the shared state behind the HTTP handlers.
type Server struct {
	cfg       Config
	catalog   *canon.Catalog
	parser    *reference.Parser
	scanner   *textscan.Scanner
	cache     *cache.ResponseCache // nil when caching is disabled
	hub       *Hub
	jobs      *JobStore
	wsLimiter *WebSocketRateLimiter
	limiter   *RateLimiter // nil when rate limiting is disabled
	started   time.Time
}

// New validates cfg and builds a server. The WebSocket hub is not running
// until Run (or StartHub) is called.
func New(cfg Config) (*Server, error) {
	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return nil, fmt.Errorf("TLS enabled but cert or key file not specified")
		}
		if _, err := os.Stat(cfg.TLS.CertFile); err != nil {
			return nil, fmt.Errorf("TLS cert file not found: %w", err)
		}
		if _, err := os.Stat(cfg.TLS.KeyFile); err != nil {
			return nil, fmt.Errorf("TLS key file not found: %w", err)
		}
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = validation.MaxTextSize
	}
	if cfg.MaxBatchItems <= 0 {
		cfg.MaxBatchItems = validation.MaxBatchItems
	}

	cat := cfg.Catalog
	if cat == nil {
		cat = canon.Default()
	}
	s := &Server{
		cfg:       cfg,
		catalog:   cat,
		parser:    reference.NewParser(cat),
		scanner:   textscan.New(cat),
		hub:       NewHub(),
		jobs:      NewJobStore(),
		wsLimiter: NewWebSocketRateLimiter(),
		started:   time.Now(),
	}
	if cfg.RateLimitRequests > 0 {
		if s.cfg.RateLimitBurst <= 0 {
			s.cfg.RateLimitBurst = 10
		}
		s.limiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         s.cfg.RateLimitBurst,
		})
	}
	if cfg.CacheEntries > 0 {
		s.cache = cache.NewResponseCache(cfg.CacheEntries, cfg.CacheBytes, cfg.CacheTTL)
	}
	return s, nil
}

// StartHub runs the WebSocket hub until ctx is done.
func (s *Server) StartHub(ctx context.Context) {
	go s.hub.Run(ctx)
}

// routes configures all HTTP routes.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/parse", s.handleParse)
	mux.HandleFunc("/validate", s.handleValidate)
	mux.HandleFunc("/batch", s.handleBatch)
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/books", s.handleBooks)
	mux.HandleFunc("/books/", s.handleBookByKey)
	mux.HandleFunc("/formats", s.handleFormats)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/jobs/", s.handleJobByID)

	return mux
}

// Handler returns the routes wrapped in the middleware chain: security
// headers, authentication, rate limiting, CORS and request logging.
func (s *Server) Handler() http.Handler {
	cfg := s.cfg
	var handler http.Handler = server.SecurityHeadersWithCSP(server.APICSPConfig(), s.routes())

	if cfg.Auth.Enabled {
		handler = AuthMiddleware(cfg.Auth, handler)
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", true,
			"note", "API key required")
	} else {
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", false,
			"note", "all requests allowed")
	}

	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", cfg.RateLimitRequests,
			"burst_size", cfg.RateLimitBurst)
	}

	handler = server.CORSMiddlewareWithConfig(server.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}, handler)
	if len(cfg.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(cfg.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}

	return logging.CombinedMiddleware(handler)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.Close()
	s.StartHub(ctx)

	protocol, wsProtocol := "http", "ws"
	if s.cfg.TLS.Enabled {
		protocol, wsProtocol = "https", "wss"
		logging.Info("TLS enabled", "cert_file", server.AbsPath(s.cfg.TLS.CertFile))
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.ServerStartup("rest_api", protocol, s.cfg.Port,
		"websocket_protocol", wsProtocol,
		"books", len(s.catalog.Books()),
		"strict_bounds", s.catalog.Strict())

	errc := make(chan error, 1)
	go func() {
		if s.cfg.TLS.Enabled {
			errc <- srv.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			errc <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), timeout)
	defer stop()
	s.jobs.CancelAll()
	logging.Info("server shutting down", "timeout", timeout.String())
	return srv.Shutdown(shutdownCtx)
}

// Close releases background resources held outside Run.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

// Start builds a server from cfg and serves until ctx is cancelled.
func Start(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
