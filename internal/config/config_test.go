// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Livy.URL = "http://livy:8998"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true without an ldap block")
	}
}

func TestValidate_MissingLivyURL(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail without livy.url")
	}
	if !strings.Contains(err.Error(), "livy.url") {
		t.Errorf("error should mention livy.url, got %v", err)
	}
}

func TestValidate_BadLivyScheme(t *testing.T) {
	cfg := validConfig()
	cfg.Livy.URL = "ftp://livy:8998"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject non-http livy.url")
	}
}

func TestValidate_LDAPTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{"one placeholder", "uid={},ou=people,dc=example,dc=com", false},
		{"no placeholder", "uid=admin,ou=people,dc=example,dc=com", true},
		{"two placeholders", "uid={},ou={},dc=example,dc=com", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LDAP = &LDAPConfig{
				URL:            "ldap://ldap.example.com:389",
				UserDNTemplate: tt.template,
				AdminGroupDN:   "cn=admins,ou=groups,dc=example,dc=com",
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LDAPBlockEnablesAuth(t *testing.T) {
	cfg := validConfig()
	cfg.LDAP = &LDAPConfig{
		URL:            "ldap://ldap.example.com:389",
		UserDNTemplate: "uid={},ou=people,dc=example,dc=com",
		AdminGroupDN:   "cn=admins,ou=groups,dc=example,dc=com",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() = false with a valid ldap block")
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
livy:
  url: http://livy:8998
server:
  addr: 127.0.0.1:9090
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Server.Addr = %q, want file value", cfg.Server.Addr)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want default 30s", cfg.Server.Timeout)
	}
	if cfg.LDAP != nil {
		t.Error("LDAP block should be nil when absent from file")
	}
}

func TestLoad_LDAPBlockFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
livy:
  url: http://livy:8998
ldap:
  url: ldap://ldap.example.com:389
  user_dn_template: uid={},ou=people,dc=example,dc=com
  admin_group_dn: cn=admins,ou=groups,dc=example,dc=com
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Fatal("AuthEnabled() = false, want true with ldap block in file")
	}
	if cfg.LDAP.AdminGroupDN != "cn=admins,ou=groups,dc=example,dc=com" {
		t.Errorf("AdminGroupDN = %q", cfg.LDAP.AdminGroupDN)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("livy:\n  url: http://livy:8998\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Server.Addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
}

func TestEnvTransformFunc_DropsUnknown(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("unknown env var should map to empty path, got %q", got)
	}
	if got := envTransformFunc("LIVY_URL"); got != "livy.url" {
		t.Errorf("LIVY_URL mapped to %q", got)
	}
}
