// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/livygate/config.yaml",
	"/etc/livygate/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with built-in defaults. The LDAP block is
// nil by default: authentication stays disabled unless the config file or
// environment supplies it.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:8080",
			Timeout:         30 * time.Second,
			LoginRateLimit:  5,
			LoginRateWindow: 5 * time.Minute,
		},
		Livy: LivyConfig{
			URL:     "",
			Timeout: 30 * time.Second,
			Breaker: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, in ascending priority, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// The structs provider flattens a nil LDAP pointer to nothing, so the
	// block only materializes when the file or environment supplies a key
	// under ldap.*. Guard against an empty block sneaking in regardless.
	if cfg.LDAP != nil && cfg.LDAP.URL == "" && cfg.LDAP.UserDNTemplate == "" && cfg.LDAP.AdminGroupDN == "" {
		cfg.LDAP = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path of the first file found, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names to koanf config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_addr":         "server.addr",
	"http_timeout":      "server.timeout",
	"login_rate_limit":  "server.login_rate_limit",
	"login_rate_window": "server.login_rate_window",

	"livy_url":     "livy.url",
	"livy_timeout": "livy.timeout",
	"livy_breaker": "livy.breaker",

	"ldap_url":              "ldap.url",
	"ldap_user_dn_template": "ldap.user_dn_template",
	"ldap_admin_group_dn":   "ldap.admin_group_dn",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

// envTransformFunc maps environment variable names to config paths.
// Returning "" drops the variable.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
