package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds server configuration sourced from the environment.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	DBPath      string   `env:"TOOLHUB_DB_PATH" envDefault:"toolhub.db"`
	CORSOrigins []string `env:"TOOLHUB_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// Load reads configuration from the environment, honoring an optional
// .env file in the working directory.
func Load() (Config, error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
