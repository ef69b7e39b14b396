package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment of the demo.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// Config holds all runtime parameters, sourced from environment variables
// (loaded from .env for local runs).
type Config struct {
	Environment     Environment   `envconfig:"ENVIRONMENT" default:"development"`
	RESTAddr        string        `envconfig:"REST_ADDR" default:":3000"`
	GraphQLAddr     string        `envconfig:"GRAPHQL_ADDR" default:":4000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads .env when present and resolves the configuration from the
// process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
