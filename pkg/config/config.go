// Copyright (C) 2026 Loamly
//
// This file is part of attribution-edge.
//
// attribution-edge is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// attribution-edge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with attribution-edge.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads deployment configuration from the environment.
// Configuration is built once at startup and passed by value into each
// component; nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every knob the edge consumes. All values are immutable
// after Load.
type Config struct {
	// Workspace identity for the ingest service.
	WorkspaceID  string
	WorkspaceKey string

	// IngestURL receives attribution events.
	IngestURL string

	// IngestTimeout bounds the event POST.
	IngestTimeout time.Duration

	// OriginURL is the upstream the edge proxies to.
	OriginURL string

	// ListenAddr serves proxied traffic; AdminAddr serves /metrics and
	// /healthz.
	ListenAddr string
	AdminAddr  string

	// ForwardUnsigned emits events for requests no verification tier can
	// handle, instead of suppressing them.
	ForwardUnsigned bool

	// KeyDirectoryURL and KeyDirectoryTTL configure the Tier 1 key
	// directory fetch. An empty URL disables the tier.
	KeyDirectoryURL string
	KeyDirectoryTTL time.Duration

	// Logging.
	LogLevel  string
	LogPretty bool
}

// Load reads configuration from the environment, failing on missing or
// malformed required values.
func Load() (Config, error) {
	cfg := Config{
		IngestTimeout:   5 * time.Second,
		ListenAddr:      ":8080",
		AdminAddr:       ":9090",
		KeyDirectoryTTL: 10 * time.Minute,
		LogLevel:        "info",
	}

	var err error
	if cfg.WorkspaceID, err = must("LOAMLY_WORKSPACE_ID"); err != nil {
		return Config{}, err
	}
	if cfg.WorkspaceKey, err = must("LOAMLY_WORKSPACE_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.IngestURL, err = must("LOAMLY_INGEST_URL"); err != nil {
		return Config{}, err
	}
	if cfg.OriginURL, err = must("LOAMLY_ORIGIN_URL"); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = getenv("LOAMLY_LISTEN_ADDR", cfg.ListenAddr)
	cfg.AdminAddr = getenv("LOAMLY_ADMIN_ADDR", cfg.AdminAddr)
	cfg.KeyDirectoryURL = os.Getenv("LOAMLY_KEY_DIRECTORY_URL")
	cfg.LogLevel = getenv("LOAMLY_LOG_LEVEL", cfg.LogLevel)

	if cfg.ForwardUnsigned, err = boolenv("LOAMLY_FORWARD_UNSIGNED", false); err != nil {
		return Config{}, err
	}
	if cfg.LogPretty, err = boolenv("LOAMLY_LOG_PRETTY", false); err != nil {
		return Config{}, err
	}
	if cfg.IngestTimeout, err = durenv("LOAMLY_INGEST_TIMEOUT", cfg.IngestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.KeyDirectoryTTL, err = durenv("LOAMLY_KEY_DIRECTORY_TTL", cfg.KeyDirectoryTTL); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func must(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("missing required env: %s", key)
	}
	return v, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolenv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool env %s=%q: %w", key, v, err)
	}
	return b, nil
}

func durenv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration env %s=%q: %w", key, v, err)
	}
	return d, nil
}
