// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the dev server's view of the merged configuration.
type ServerConfig struct {
	// Address is the listen address in host:port form.
	Address string
	// TokenSecret is the HMAC key access tokens are signed with.
	TokenSecret string
	// TokenTTL is the validity window of issued access tokens.
	TokenTTL time.Duration
}

// GetServerConfig builds and validates the dev server config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Address:     cfg.Server.Address,
		TokenSecret: cfg.Server.TokenSecret,
		TokenTTL:    cfg.Server.TokenTTL,
	}

	return serverCfg, serverCfg.validate()
}

func (c *ServerConfig) validate() error {
	if c.Address == "" || c.TokenSecret == "" || c.TokenTTL <= 0 {
		return ErrInvalidServerConfigs
	}
	return nil
}
