// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package config assembles codechat configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults, merged in that order of precedence.
package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the dev server. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds outbound transport settings for the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds local persistence settings for the client.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and token settings for the dev server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background job settings for the client.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config
	// flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings used by the client transport layer.
type Adapter struct {
	// BaseURL is the backend base URL the client talks to.
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path holding the persisted identity record.
	// ":memory:" is accepted for tests.
	DSN string `env:"DSN"`
}

// Server holds dev server settings.
type Server struct {
	// Address is the listen address in host:port form.
	Address string `env:"ADDRESS"`

	// TokenSecret is the HMAC key the dev server signs access tokens with.
	TokenSecret string `env:"TOKEN_SECRET"`

	// TokenTTL is the validity window of issued access tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL"`
}

// Workers contains client background worker settings.
type Workers struct {
	// RefreshInterval defines how often the conversation list is
	// refreshed in the background.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig builds the merged configuration: environment variables
// take precedence over flags, flags over the optional JSON file, and the
// JSON file over built-in defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in fallback configuration. Every field here can
// be overridden by any other source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "codechat.db"},
		},
		Server: Server{
			Address:     "localhost:8000",
			TokenSecret: "dev-only-secret",
			TokenTTL:    24 * time.Hour,
		},
		Workers: Workers{
			RefreshInterval: time.Minute,
		},
	}
}
