// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, CSRF) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported CSRF secret stores.
const (
	CSRFStoreCookie = "cookie"
	CSRFStoreRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"4000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Storage backend selection
	DBDriver    string `env:"DB_DRIVER"    envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"  envDefault:"./database.db"`

	// Key-Value store (Redis), optional unless CSRF_STORE=redis
	RedisURL string `env:"REDIS_URL"`

	// Bearer token signing; the secret is required unless an RSA key pair is set
	JWTSecret      string        `env:"JWT_SECRET,unset"`
	JWTIssuer      string        `env:"JWT_ISSUER"           envDefault:"secureblog.local"`
	JWTTTL         time.Duration `env:"JWT_TTL"              envDefault:"1h"`
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"`

	// Password hashing
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Anti-forgery protection
	CSRFStore        string        `env:"CSRF_STORE"         envDefault:"cookie"`
	CSRFCookieName   string        `env:"CSRF_COOKIE_NAME"   envDefault:"_csrf"`
	CSRFCookieSecure bool          `env:"CSRF_COOKIE_SECURE" envDefault:"false"`
	CSRFTTL          time.Duration `env:"CSRF_TTL"           envDefault:"2h"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Honour X-Forwarded-For / X-Real-IP; enable only behind a trusted proxy
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Per-IP throttling
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Logging sink; empty means stdout only
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"  envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS"  envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the cross-field rules env tags cannot express.
func (c *Config) Validate() error {
	var problems []error

	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, errors.New("DATABASE_URL is required when DB_DRIVER=postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, errors.New("SQLITE_PATH is required when DB_DRIVER=sqlite"))
		}
	default:
		problems = append(problems, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	switch c.CSRFStore {
	case CSRFStoreCookie:
	case CSRFStoreRedis:
		if c.RedisURL == "" {
			problems = append(problems, errors.New("REDIS_URL is required when CSRF_STORE=redis"))
		}
	default:
		problems = append(problems, fmt.Errorf("unsupported CSRF_STORE %q", c.CSRFStore))
	}

	if (c.JWTPrivKeyPath == "") != (c.JWTPubKeyPath == "") {
		problems = append(problems, errors.New("JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH must be set together"))
	}

	if !c.UsesRSA() && strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, errors.New("JWT_SECRET is required unless an RSA key pair is configured"))
	}

	if c.JWTTTL <= 0 {
		problems = append(problems, errors.New("JWT_TTL must be positive"))
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		problems = append(problems, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesRSA reports whether bearer tokens are signed with RSA key files.
func (c *Config) UsesRSA() bool {
	return c.JWTPrivKeyPath != "" && c.JWTPubKeyPath != ""
}

// IsOriginAllowed reports whether a browser origin may call the API with credentials.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
