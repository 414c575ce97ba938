package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
	// EnvDevelopment represents the development environment.
	EnvDevelopment = "development"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	Env       string `envconfig:"ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"./public"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Session settings
	GenerationLatency time.Duration `envconfig:"GENERATION_LATENCY" default:"2s"`
	ClipboardWindow   time.Duration `envconfig:"CLIPBOARD_WINDOW" default:"2s"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	// ArchiveDir enables the generation archive when set.
	ArchiveDir string `envconfig:"ARCHIVE_DIR"`
}

// LoadConfig loads configuration from an optional .env file and the
// environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is expected outside development.
		if !os.IsNotExist(err) {
			slog.Warn("Error loading .env file", "error", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the session layer cannot honor.
func (c *Config) Validate() error {
	if c.ClipboardWindow <= 0 {
		return fmt.Errorf("CLIPBOARD_WINDOW must be positive, got %s", c.ClipboardWindow)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.GenerationLatency < 0 {
		return fmt.Errorf("GENERATION_LATENCY must not be negative, got %s", c.GenerationLatency)
	}
	return nil
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// BuildCSP constructs the Content Security Policy for mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
