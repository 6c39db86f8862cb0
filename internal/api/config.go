package api

import (
	"time"

	"github.com/FocuswithJustin/ScriptureLinks/core/canon"
)

// Config holds server configuration.
type Config struct {
	Port              int
	Version           string         // reported by / and /health
	Catalog           *canon.Catalog // nil uses the built-in tables
	RateLimitRequests int            // Requests per minute (0 = disabled)
	RateLimitBurst    int            // Burst size
	Auth              AuthConfig     // Authentication configuration
	TLS               TLSConfig      // TLS configuration
	AllowedOrigins    []string       // CORS and WebSocket allowed origins (empty = allow all)
	CacheEntries      int            // Rewrite cache entry limit (0 = disabled)
	CacheBytes        int64          // Rewrite cache byte limit (0 = unlimited)
	CacheTTL          time.Duration  // Rewrite cache entry lifetime (0 = no expiry)
	MaxTextBytes      int            // Largest text accepted by /process (0 = validation.MaxTextSize)
	MaxBatchItems     int            // Largest batch accepted by /batch and /jobs (0 = validation.MaxBatchItems)
	ShutdownTimeout   time.Duration  // Grace period for in-flight requests on shutdown
}

// TLSConfig holds TLS/HTTPS configuration.
type TLSConfig struct {
	Enabled  bool   // Enable HTTPS
	CertFile string // Path to TLS certificate file
	KeyFile  string // Path to TLS private key file
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Port:            8081,
		Version:         "dev",
		RateLimitBurst:  10,
		CacheEntries:    512,
		CacheBytes:      32 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}
