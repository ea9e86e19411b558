package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration for the API process.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	DatabaseURL string `envconfig:"DB_URL"`
	RedisURL    string `envconfig:"REDIS_URL"`

	// Background push workers consumed from the asynq "push" queue.
	PushConcurrency int `envconfig:"PUSH_CONCURRENCY" default:"10"`
	PushMaxRetry    int `envconfig:"PUSH_MAX_RETRY" default:"3"`
}

// Load reads configuration from a .env file (when present) and the
// environment. Production requires the database and redis URLs; development
// tolerates their absence so pieces can run standalone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DB_URL is required in production")
		}
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config: REDIS_URL is required in production")
		}
	}

	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
