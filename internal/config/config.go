package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Config is shared by the cli and the ui server. The api base url can be overridden with the --api-base-url flag.
type Config struct {
	Environment        string        `env:"ENVIRONMENT,default=dev"`
	LogLevel           string        `env:"LOG_LEVEL,default=info"`
	APIBaseURL         string        `env:"API_BASE_URL,default=http://localhost:5000"`
	APITimeout         time.Duration `env:"API_TIMEOUT,default=10s"`
	Host               string        `env:"HOST,default=0.0.0.0"`
	Port               int           `env:"PORT,default=3000"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout        time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	AllowedOrigins     []string      `env:"ALLOWED_ORIGINS,separator=|"`
	RateLimitRPS       int32         `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst     int32         `env:"RATE_LIMIT_BURST,default=20"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT,default=30m"`
}

const (
	// SessionCookieName identifies the browser session in the ui server
	SessionCookieName = "storefront_session"

	ServerShutdownTimeout = 10 * time.Second
	CORSMaxAgeInSeconds   = 86400
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.APITimeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %v", cfg.APITimeout)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.SessionIdleTimeout <= 0 {
		return fmt.Errorf("session idle timeout must be positive, got %v", cfg.SessionIdleTimeout)
	}

	if err := ValidateAPIBaseURL(cfg.APIBaseURL); err != nil {
		return err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		if len(cfg.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in %v", cfg.Environment)
		}
		if cfg.AllowedOrigins[0] == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not in prod/staging
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	return nil
}

// ValidateAPIBaseURL checks the backend url is absolute. The client appends /api/... paths to it.
func ValidateAPIBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must use http or https: %s", baseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL must include a host: %s", baseURL)
	}
	return nil
}
