package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings read from the environment
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	GamesURL      string        `env:"GAMES_URL"`
	GamesFile     string        `env:"GAMES_FILE" envDefault:"data/games.json"`
	LoadDelay     time.Duration `env:"LOAD_DELAY" envDefault:"500ms"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	PublicURL     string        `env:"PUBLIC_URL"`
	Debug         bool          `env:"DEBUG"`
}

// Addr returns the listen address
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the server cannot run with
func (c Config) Validate() error {
	if c.GamesURL == "" && c.GamesFile == "" {
		return fmt.Errorf("config: one of GAMES_URL or GAMES_FILE is required")
	}
	if c.LoadDelay < 0 {
		return fmt.Errorf("config: LOAD_DELAY must not be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("config: SWEEP_INTERVAL must be positive")
	}
	return nil
}
