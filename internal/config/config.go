// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Deployment environments recognized by [App.Environment].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Storage drivers recognized by [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// StructuredConfig is the top-level configuration of go-fleet-keeper,
// merged from defaults, environment variables, flags and an optional JSON
// file.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Auth    Auth    `envPrefix:"AUTH_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`

	// Adapter configures the outbound HTTP client used by cmd/client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is an optional JSON file merged on top of env and flags.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-wide settings.
type App struct {
	// Environment is one of "development", "production" or "test".
	// Env: APP_ENV
	Environment string `env:"ENV"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds session and login settings.
type Auth struct {
	// SessionDuration is the sliding session window. Each authenticated
	// request pushes the session expiry to now + SessionDuration.
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// LoginPath is where unauthenticated page requests are redirected.
	// Env: AUTH_LOGIN_PATH
	LoginPath string `env:"LOGIN_PATH"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds relational database settings.
type DB struct {
	// Driver is "postgres", "sqlite" or "memory".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string; ignored by the memory driver.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds listener settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health endpoint when set.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the outbound auth client.
type Adapter struct {
	// BaseURL of the server, e.g. "http://localhost:8080".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// SecureCookie reports whether session cookies must carry the Secure
// attribute, which is the case in production.
func (cfg *StructuredConfig) SecureCookie() bool {
	return cfg.App.Environment == EnvProduction
}

// GetStructuredConfig loads the server configuration. Sources are applied
// in order, later non-zero values winning:
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path taken from 2 or 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, _, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	return cfg, err
}

// GetClientConfig loads the configuration of the command-line client from
// the same sources as [GetStructuredConfig]. The returned slice holds the
// positional arguments left after flag parsing (the client command).
func GetClientConfig(args []string) (*StructuredConfig, []string, error) {
	cfg, rest, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, nil, err
	}

	if err = cfg.validateClient(); err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment: EnvDevelopment,
			Version:     "dev",
			LogLevel:    "debug",
		},
		Auth: Auth{
			SessionDuration: 14 * 24 * time.Hour,
			LoginPath:       "/login",
		},
		Storage: Storage{
			DB: DB{Driver: DriverMemory},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}
