package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server configures cmd/server.
type Server struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	Environment       string        `env:"APP_ENV" envDefault:"development"`
	Version           string        `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel          slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedData          bool          `env:"SEED_DATA" envDefault:"true"`
}

// Client configures cmd/dashboard.
type Client struct {
	APIURL          string        `env:"DASHBOARD_API_URL" envDefault:"http://localhost:8080"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s"`
	FetchRetries    int           `env:"FETCH_RETRIES" envDefault:"2"`
	FetchBackoff    time.Duration `env:"FETCH_BACKOFF" envDefault:"100ms"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotenv reads the given files (".env" when none) into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadServer() (Server, error) {
	var cfg Server
	if err := LoadDotenv(); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := LoadDotenv(); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.RefreshInterval <= 0 {
		return cfg, fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	return cfg, nil
}
