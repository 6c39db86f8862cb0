// Package server provides middleware shared by the HTTP front ends:
// CORS, security headers and request validation helpers.
package server

import (
	"net/http"
	"path/filepath"
	"strings"
)

// AbsPath returns the absolute path of a file, or the original path if it fails.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// OriginAllowed matches origin against a list of patterns: "*" for any
// origin, "*.example.com" for subdomains, or an exact origin. An empty
// origin only matches "*".
func OriginAllowed(origin string, patterns []string) bool {
	for _, p := range patterns {
		switch {
		case p == "*":
			return true
		case origin == "":
		case origin == p:
			return true
		case strings.HasPrefix(p, "*.") && strings.HasSuffix(origin, p[1:]):
			return true
		}
	}
	return false
}

// CORSConfig holds CORS middleware configuration.
type CORSConfig struct {
	AllowedOrigins []string // patterns as accepted by OriginAllowed; empty allows all (*)
}

// CORSMiddlewareWithConfig adds CORS headers to responses. With no
// configured origins it answers "*"; otherwise it echoes matching origins
// and leaves the headers off for the rest, so browsers block the response.
func CORSMiddlewareWithConfig(cfg CORSConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigin := "*"
		if len(cfg.AllowedOrigins) > 0 {
			origin := r.Header.Get("Origin")
			if origin == "" || !OriginAllowed(origin, cfg.AllowedOrigins) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			allowedOrigin = origin
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowedOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, If-None-Match")
		h.Set("Access-Control-Expose-Headers", "ETag, X-Cache, X-RateLimit-Remaining, Retry-After")
		if allowedOrigin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
