// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package config loads and validates Livygate configuration.
//
// Configuration is layered via koanf v2 (highest priority wins):
//
//  1. Environment variables (LIVY_URL, LDAP_URL, HTTP_ADDR, ...)
//  2. Optional YAML config file
//  3. Built-in defaults
//
// The LDAP block is optional. Its presence enables the authentication
// layer process-wide; when it is absent every request is handled in
// auth-disabled mode. The mode is fixed at startup and never changes
// while the process runs.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Livy    LivyConfig    `koanf:"livy"`
	LDAP    *LDAPConfig   `koanf:"ldap"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `koanf:"addr"`

	// Timeout applies to both request reads and response writes.
	Timeout time.Duration `koanf:"timeout"`

	// LoginRateLimit is the number of POST /login attempts allowed per
	// client IP within LoginRateWindow. 0 disables rate limiting.
	LoginRateLimit int `koanf:"login_rate_limit"`

	// LoginRateWindow is the window for LoginRateLimit.
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// LivyConfig holds the upstream Livy server settings.
type LivyConfig struct {
	// URL is the base URL of the Livy REST endpoint, e.g. http://livy:8998.
	URL string `koanf:"url"`

	// Timeout bounds each outbound Livy call.
	Timeout time.Duration `koanf:"timeout"`

	// Breaker enables the circuit breaker around the Livy client.
	Breaker bool `koanf:"breaker"`
}

// LDAPConfig holds the optional directory-service settings.
// When this block is present the authentication layer is enabled.
type LDAPConfig struct {
	// URL is the directory service address, e.g. ldap://ldap.example.com:389.
	URL string `koanf:"url"`

	// UserDNTemplate is the bind DN template with exactly one "{}"
	// placeholder replaced by the login username, e.g.
	// "uid={},ou=people,dc=example,dc=com".
	UserDNTemplate string `koanf:"user_dn_template"`

	// AdminGroupDN is the group searched to classify administrators,
	// e.g. "cn=admins,ou=groups,dc=example,dc=com".
	AdminGroupDN string `koanf:"admin_group_dn"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AuthEnabled reports whether the authentication layer is configured.
func (c *Config) AuthEnabled() bool {
	return c.LDAP != nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLivy(); err != nil {
		return err
	}
	if err := c.validateLDAP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateLivy() error {
	if c.Livy.URL == "" {
		return fmt.Errorf("livy.url is required (e.g. http://livy:8998)")
	}
	u, err := url.Parse(c.Livy.URL)
	if err != nil {
		return fmt.Errorf("livy.url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("livy.url must use http or https, got %q", u.Scheme)
	}
	if c.Livy.Timeout <= 0 {
		return fmt.Errorf("livy.timeout must be positive, got %v", c.Livy.Timeout)
	}
	return nil
}

func (c *Config) validateLDAP() error {
	if c.LDAP == nil {
		return nil // auth-disabled mode
	}
	if c.LDAP.URL == "" {
		return fmt.Errorf("ldap.url is required when the ldap block is present")
	}
	if strings.Count(c.LDAP.UserDNTemplate, "{}") != 1 {
		return fmt.Errorf("ldap.user_dn_template must contain exactly one {} placeholder, got %q", c.LDAP.UserDNTemplate)
	}
	if c.LDAP.AdminGroupDN == "" {
		return fmt.Errorf("ldap.admin_group_dn is required when the ldap block is present")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
