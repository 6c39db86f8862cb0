package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/FocuswithJustin/ScriptureLinks/internal/logging"
)

// MinAPIKeyLength is the shortest key the server accepts.
const MinAPIKeyLength = 16

var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKey  string
}

// publicPaths bypass AuthMiddleware. /ws checks the key itself before
// upgrading, since browsers cannot set headers on a WebSocket handshake.
var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
	"/ws":     true,
}

// checkAPIKey reports whether r carries the configured key in X-API-Key,
// or in the api_key query parameter when allowQuery is set.
func checkAPIKey(cfg AuthConfig, r *http.Request, allowQuery bool) error {
	if !cfg.Enabled {
		return nil
	}
	key := r.Header.Get("X-API-Key")
	if key == "" && allowQuery {
		key = r.URL.Query().Get("api_key")
	}
	if key == "" {
		return ErrMissingAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

// AuthMiddleware rejects requests without the API key when auth is enabled.
func AuthMiddleware(cfg AuthConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		switch err := checkAPIKey(cfg, r, false); {
		case errors.Is(err, ErrMissingAPIKey):
			logging.SecurityEvent("unauthorized_request", "auth", "path", r.URL.Path, "reason", err.Error())
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing X-API-Key header")
		case err != nil:
			logging.SecurityEvent("unauthorized_request", "auth", "path", r.URL.Path, "reason", err.Error())
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// ValidateAuthConfig validates the authentication configuration.
func ValidateAuthConfig(cfg AuthConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required when authentication is enabled (%s)", GenerateAPIKeyExample())
	}
	if len(cfg.APIKey) < MinAPIKeyLength {
		return fmt.Errorf("API key must be at least %d characters (got %d)", MinAPIKeyLength, len(cfg.APIKey))
	}
	return nil
}

// GenerateAPIKeyExample returns an example API key format.
func GenerateAPIKeyExample() string {
	return "Example: export SCRIPTURE_LINKS_API_KEY=$(openssl rand -base64 32)"
}
