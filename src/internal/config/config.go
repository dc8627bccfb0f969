package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Session store backends.
const (
	StoreCookie   = "cookie"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Token verification modes.
const (
	VerifyOIDC       = "oidc"
	VerifyHMAC       = "hmac"
	VerifyUnverified = "unverified"
)

// WebFrontendConfig holds configuration for the Web Frontend service
type WebFrontendConfig struct {
	APIBaseURL           string        `json:"api_base_url" yaml:"api_base_url"`
	Port                 string        `json:"port" yaml:"port"`
	LoginPath            string        `json:"login_path" yaml:"login_path"`
	SessionStore         string        `json:"session_store" yaml:"session_store"`
	DatabaseURL          string        `json:"database_url" yaml:"database_url"`
	SecureCookies        bool          `json:"secure_cookies" yaml:"secure_cookies"`
	TokenVerification    string        `json:"token_verification" yaml:"token_verification"`
	TokenSecret          string        `json:"token_secret" yaml:"token_secret"`
	TokenIssuer          string        `json:"token_issuer" yaml:"token_issuer"`
	TokenAudience        string        `json:"token_audience" yaml:"token_audience"`
	TokenLeeway          time.Duration `json:"token_leeway" yaml:"token_leeway"`
	FetchTimeout         time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`
	RecommendationsLimit int           `json:"recommendations_limit" yaml:"recommendations_limit"`
	OIDC                 OIDCConfig    `json:"oidc" yaml:"oidc"`
}

// UnmarshalJSON accepts durations as Go duration strings ("3s") or as
// integer nanoseconds. YAML decodes duration strings natively.
func (c *WebFrontendConfig) UnmarshalJSON(data []byte) error {
	type plain WebFrontendConfig
	aux := struct {
		*plain
		TokenLeeway  json.RawMessage `json:"token_leeway"`
		FetchTimeout json.RawMessage `json:"fetch_timeout"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if c.TokenLeeway, err = jsonDuration("token_leeway", aux.TokenLeeway, c.TokenLeeway); err != nil {
		return err
	}
	if c.FetchTimeout, err = jsonDuration("fetch_timeout", aux.FetchTimeout, c.FetchTimeout); err != nil {
		return err
	}
	return nil
}

func jsonDuration(key string, raw json.RawMessage, fallback time.Duration) (time.Duration, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return fallback, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return d, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("invalid %s: want a duration string or nanoseconds", key)
	}
	return time.Duration(n), nil
}

type OIDCConfig struct {
	ProviderURL  string `json:"provider_url" yaml:"provider_url"`
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
	RedirectURL  string `json:"redirect_url" yaml:"redirect_url"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() WebFrontendConfig {
	return WebFrontendConfig{
		APIBaseURL:           "http://localhost:3001",
		Port:                 "8080",
		LoginPath:            "/users/login",
		SessionStore:         StoreCookie,
		TokenVerification:    VerifyUnverified,
		FetchTimeout:         10 * time.Second,
		RecommendationsLimit: 20,
	}
}

// Load loads the configuration from a file (YAML or JSON)
func Load(path string, cfg interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil {
			return fmt.Errorf("failed to decode YAML config file %s: %w", path, err)
		}
	} else {
		// Default to JSON for compatibility or other extensions
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil {
			return fmt.Errorf("failed to decode JSON config file %s: %w", path, err)
		}
	}

	return nil
}

// LoadWebFrontend builds the frontend configuration: defaults, then the
// optional file at path, then environment variables.
func LoadWebFrontend(path string) (*WebFrontendConfig, error) {
	cfg := Defaults()
	if path != "" {
		if err := Load(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *WebFrontendConfig) applyEnv() error {
	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.Port = getEnv("PORT", c.Port)
	c.LoginPath = getEnv("LOGIN_PATH", c.LoginPath)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.TokenVerification = getEnv("TOKEN_VERIFICATION", c.TokenVerification)
	c.TokenSecret = getEnv("TOKEN_SECRET", c.TokenSecret)
	c.TokenIssuer = getEnv("TOKEN_ISSUER", c.TokenIssuer)
	c.TokenAudience = getEnv("TOKEN_AUDIENCE", c.TokenAudience)
	c.OIDC.ProviderURL = getEnv("OIDC_PROVIDER", c.OIDC.ProviderURL)
	c.OIDC.ClientID = getEnv("OIDC_CLIENT_ID", c.OIDC.ClientID)
	c.OIDC.ClientSecret = getEnv("OIDC_CLIENT_SECRET", c.OIDC.ClientSecret)
	c.OIDC.RedirectURL = getEnv("OIDC_REDIRECT_URL", c.OIDC.RedirectURL)

	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SECURE_COOKIES value: %w", err)
		}
		c.SecureCookies = b
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT format: %w", err)
		}
		c.FetchTimeout = d
	}
	if v := os.Getenv("TOKEN_LEEWAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_LEEWAY format: %w", err)
		}
		c.TokenLeeway = d
	}
	if v := os.Getenv("RECOMMENDATIONS_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RECOMMENDATIONS_LIMIT value: %w", err)
		}
		c.RecommendationsLimit = n
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *WebFrontendConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("LOGIN_PATH must be an absolute path, got %q", c.LoginPath)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.TokenLeeway < 0 {
		return fmt.Errorf("TOKEN_LEEWAY cannot be negative")
	}
	if c.RecommendationsLimit <= 0 {
		return fmt.Errorf("RECOMMENDATIONS_LIMIT must be positive")
	}

	switch c.SessionStore {
	case StoreCookie, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres session store")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}

	switch c.TokenVerification {
	case VerifyUnverified:
	case VerifyHMAC:
		if c.TokenSecret == "" {
			return fmt.Errorf("TOKEN_SECRET is required for hmac token verification")
		}
	case VerifyOIDC:
		if c.OIDC.ProviderURL == "" {
			return fmt.Errorf("OIDC_PROVIDER is required for oidc token verification")
		}
	default:
		return fmt.Errorf("unknown TOKEN_VERIFICATION %q", c.TokenVerification)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
