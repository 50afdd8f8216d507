// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/livygate/livygate/internal/auth"
	"github.com/livygate/livygate/internal/config"
)

// NewRouter builds the full route table with the shared middleware
// stack. Identity resolution runs for every route; per-route
// authorization stays in the handlers.
func NewRouter(h *Handler, store auth.SessionStore, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(noCacheMiddleware)
	r.Use(metricsMiddleware)
	r.Use(identityMiddleware(store, cfg.AuthEnabled()))

	r.Get("/", h.Index)
	r.Get("/login", h.LoginPage)
	if cfg.Server.LoginRateLimit > 0 {
		r.With(httprate.Limit(
			cfg.Server.LoginRateLimit,
			cfg.Server.LoginRateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		)).Post("/login", h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Get("/logout", h.Logout)

	r.Get("/api/user", h.User)
	r.Get("/api/user_session", h.User)
	r.Get("/api/sessions", h.Sessions)
	r.Delete("/api/sessions/{id}", h.KillSession)

	r.Handle("/metrics", promhttp.Handler())

	// The original server answered every unmatched method or path with a
	// bare 404, never a 405.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	})

	return r
}
