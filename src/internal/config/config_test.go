package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks every variable LoadWebFrontend reads; getEnv treats empty
// as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"API_BASE_URL", "PORT", "LOGIN_PATH", "SESSION_STORE", "DATABASE_URL",
		"TOKEN_VERIFICATION", "TOKEN_SECRET", "TOKEN_ISSUER", "TOKEN_AUDIENCE",
		"OIDC_PROVIDER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
		"SECURE_COOKIES", "FETCH_TIMEOUT", "TOKEN_LEEWAY", "RECOMMENDATIONS_LIMIT",
	} {
		t.Setenv(k, "")
		t.Setenv(k+"_FILE", "")
	}
}

func TestLoadWebFrontend_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWebFrontend("")

	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadWebFrontend_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "frontend.yaml", `
api_base_url: http://catalog:3001
port: "9090"
session_store: postgres
database_url: postgres://u:p@db/cinefront?sslmode=disable
token_verification: hmac
token_secret: s3cret
fetch_timeout: 3s
token_leeway: 1m
recommendations_limit: 12
oidc:
  provider_url: https://id.example.com
  client_id: cinefront
`)

	cfg, err := LoadWebFrontend(path)

	require.NoError(t, err)
	assert.Equal(t, "http://catalog:3001", cfg.APIBaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/users/login", cfg.LoginPath, "defaults survive partial files")
	assert.Equal(t, StorePostgres, cfg.SessionStore)
	assert.Equal(t, VerifyHMAC, cfg.TokenVerification)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.TokenLeeway)
	assert.Equal(t, 12, cfg.RecommendationsLimit)
	assert.Equal(t, "cinefront", cfg.OIDC.ClientID)
}

func TestLoadWebFrontend_JSON(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "frontend.json", `{"api_base_url": "http://catalog:3001", "login_path": "/login"}`)

	cfg, err := LoadWebFrontend(path)

	require.NoError(t, err)
	assert.Equal(t, "/login", cfg.LoginPath)
}

func TestLoadWebFrontend_JSONDurations(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		body    string
		timeout time.Duration
		leeway  time.Duration
	}{
		{"strings", `{"fetch_timeout": "3s", "token_leeway": "30s"}`, 3 * time.Second, 30 * time.Second},
		{"nanoseconds", `{"fetch_timeout": 2000000000}`, 2 * time.Second, 0},
		{"absent keeps default", `{"port": "9090"}`, 10 * time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWebFrontend(writeFile(t, "frontend.json", tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.timeout, cfg.FetchTimeout)
			assert.Equal(t, tt.leeway, cfg.TokenLeeway)
		})
	}
}

func TestLoadWebFrontend_JSONBadDuration(t *testing.T) {
	clearEnv(t)

	_, err := LoadWebFrontend(writeFile(t, "frontend.json", `{"fetch_timeout": "soon"}`))

	assert.ErrorContains(t, err, "fetch_timeout")
}

func TestLoadWebFrontend_EnvOverrides(t *testing.T) {
	clearEnv(t)
	secretFile := writeFile(t, "secret", "from-file\n")
	t.Setenv("API_BASE_URL", "http://env-catalog")
	t.Setenv("TOKEN_VERIFICATION", "hmac")
	t.Setenv("TOKEN_SECRET_FILE", secretFile)
	t.Setenv("FETCH_TIMEOUT", "750ms")
	t.Setenv("SECURE_COOKIES", "true")

	cfg, err := LoadWebFrontend("")

	require.NoError(t, err)
	assert.Equal(t, "http://env-catalog", cfg.APIBaseURL)
	assert.Equal(t, "from-file", cfg.TokenSecret)
	assert.Equal(t, 750*time.Millisecond, cfg.FetchTimeout)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadWebFrontend_InvalidEnv(t *testing.T) {
	tests := map[string][2]string{
		"bad timeout":  {"FETCH_TIMEOUT", "soon"},
		"bad bool":     {"SECURE_COOKIES", "maybe"},
		"bad limit":    {"RECOMMENDATIONS_LIMIT", "many"},
		"bad store":    {"SESSION_STORE", "redis"},
		"bad verifier": {"TOKEN_VERIFICATION", "trust-me"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := LoadWebFrontend("")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WebFrontendConfig)
	}{
		{"empty api", func(c *WebFrontendConfig) { c.APIBaseURL = "" }},
		{"relative login path", func(c *WebFrontendConfig) { c.LoginPath = "login" }},
		{"postgres without dsn", func(c *WebFrontendConfig) { c.SessionStore = StorePostgres }},
		{"hmac without secret", func(c *WebFrontendConfig) { c.TokenVerification = VerifyHMAC }},
		{"oidc without provider", func(c *WebFrontendConfig) { c.TokenVerification = VerifyOIDC }},
		{"zero timeout", func(c *WebFrontendConfig) { c.FetchTimeout = 0 }},
		{"negative leeway", func(c *WebFrontendConfig) { c.TokenLeeway = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg WebFrontendConfig
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	assert.Error(t, err)
}
