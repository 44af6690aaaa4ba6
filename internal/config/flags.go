// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a dev server listen address in format [host]:[port]
//	-b backend base URL the client connects to
//	-d local database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-token-secret dev server token signing secret
//	-token-ttl dev server token validity (e.g., "24h")
//	-request-timeout client request timeout (e.g., "30s", "1m")
//	-refresh-interval background conversation list refresh interval
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var baseURL string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSecret string
	var tokenTTL time.Duration
	var requestTimeout time.Duration
	var refreshInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&baseURL, "b", "", "Backend base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSecret, "token-secret", "", "Token signing secret")
	flag.DurationVar(&tokenTTL, "token-ttl", 0, "Token validity (e.g., 24h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Conversation list refresh interval")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			Address:     serverAddress.String(),
			TokenSecret: tokenSecret,
			TokenTTL:    tokenTTL,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or the empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
