// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package main is the entry point for the Livygate server.
//
// Livygate is a small web front end for an Apache Livy server: it lists
// the compute sessions Livy is running and lets users kill them, with
// optional LDAP authentication deciding who sees and kills what.
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and optional YAML file (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Livy client: direct HTTP, optionally wrapped in a circuit breaker
//  4. Authentication: LDAP when the ldap config block is present,
//     otherwise auth-disabled mode
//  5. HTTP server: chi router with the web UI and JSON API
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file, built-in defaults.
//
// Auth-disabled mode needs only the Livy endpoint:
//
//	export LIVY_URL=http://livy:8998
//	./livygate
//
// With LDAP authentication:
//
//	export LIVY_URL=http://livy:8998
//	export LDAP_URL=ldap://ldap.example.com:389
//	export LDAP_USER_DN_TEMPLATE='uid={},ou=people,dc=example,dc=com'
//	export LDAP_ADMIN_GROUP_DN='cn=admins,ou=groups,dc=example,dc=com'
//	./livygate
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections and waits up to 10 seconds for in-flight
// requests to complete. User sessions live in process memory and do not
// survive a restart.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livygate/livygate/internal/api"
	"github.com/livygate/livygate/internal/auth"
	"github.com/livygate/livygate/internal/config"
	"github.com/livygate/livygate/internal/livy"
	"github.com/livygate/livygate/internal/logging"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("livygate %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Config not yet available, use the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("version", version).
		Str("livy_url", cfg.Livy.URL).
		Bool("auth_enabled", cfg.AuthEnabled()).
		Msg("Starting Livygate")

	var livyClient livy.Client = livy.NewHTTPClient(&cfg.Livy)
	if cfg.Livy.Breaker {
		livyClient = livy.NewBreakerClient(livyClient)
		logging.Info().Msg("Livy circuit breaker enabled")
	}

	var authn auth.Authenticator
	if cfg.AuthEnabled() {
		authn = auth.NewLDAPAuthenticator(*cfg.LDAP)
		logging.Info().
			Str("ldap_url", cfg.LDAP.URL).
			Str("admin_group_dn", cfg.LDAP.AdminGroupDN).
			Msg("LDAP authentication enabled")
	} else {
		logging.Warn().Msg("No ldap block configured, running with authentication disabled")
	}

	store := auth.NewMemoryStore()
	handler := api.NewHandler(store, authn, livyClient)
	router := api.NewRouter(handler, store, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Fatal().Err(err).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error().Err(err).Msg("HTTP server error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
