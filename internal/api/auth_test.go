package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123"

func TestAuthMiddleware(t *testing.T) {
	_, ts := newTestServer(t, func(c *Config) { c.Auth = AuthConfig{Enabled: true, APIKey: testKey} })

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"root is public", "/", "", http.StatusOK},
		{"health is public", "/health", "", http.StatusOK},
		{"missing key", "/books", "", http.StatusUnauthorized},
		{"wrong key", "/books", "wrong", http.StatusUnauthorized},
		{"valid key", "/books", testKey, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.key != "" {
				header.Set("X-API-Key", tt.key)
			}
			resp, env := doJSON(t, http.MethodGet, ts.URL+tt.path, nil, header)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusUnauthorized && (env.Error == nil || env.Error.Code != "UNAUTHORIZED") {
				t.Errorf("env = %+v", env)
			}
		})
	}
}

func TestValidateAuthConfig(t *testing.T) {
	tests := []struct {
		cfg     AuthConfig
		wantErr bool
	}{
		{AuthConfig{}, false},
		{AuthConfig{Enabled: true}, true},
		{AuthConfig{Enabled: true, APIKey: "short"}, true},
		{AuthConfig{Enabled: true, APIKey: testKey}, false},
	}
	for _, tt := range tests {
		if err := ValidateAuthConfig(tt.cfg); (err != nil) != tt.wantErr {
			t.Errorf("ValidateAuthConfig(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}
}

func TestCheckAPIKey(t *testing.T) {
	cfg := AuthConfig{Enabled: true, APIKey: testKey}
	tests := []struct {
		name       string
		header     string
		query      string
		allowQuery bool
		want       error
	}{
		{"header", testKey, "", false, nil},
		{"missing", "", "", false, ErrMissingAPIKey},
		{"wrong", "wrong", "", false, ErrInvalidAPIKey},
		{"prefix of key", testKey[:10], "", false, ErrInvalidAPIKey},
		{"query ignored", "", testKey, false, ErrMissingAPIKey},
		{"query allowed", "", testKey, true, nil},
		{"header wins over query", "wrong", testKey, true, ErrInvalidAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws?api_key="+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("X-API-Key", tt.header)
			}
			if err := checkAPIKey(cfg, r, tt.allowQuery); err != tt.want {
				t.Errorf("checkAPIKey() = %v, want %v", err, tt.want)
			}
		})
	}

	if err := checkAPIKey(AuthConfig{}, httptest.NewRequest(http.MethodGet, "/", nil), false); err != nil {
		t.Errorf("disabled auth should accept everything: %v", err)
	}
	if !strings.Contains(GenerateAPIKeyExample(), "SCRIPTURE_LINKS_API_KEY") {
		t.Error("example should name the environment variable")
	}
}
