// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package api is the request dispatcher: routing, middleware, and the
// HTTP handlers tying the auth layer to the Livy client.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/livygate/livygate/internal/auth"
	"github.com/livygate/livygate/internal/frontend"
	"github.com/livygate/livygate/internal/livy"
	"github.com/livygate/livygate/internal/logging"
	"github.com/livygate/livygate/internal/metrics"
)

// tokenIssueAttempts bounds the regenerate-and-retry loop on token
// collision. With 128-bit random tokens a single retry is already
// astronomically unlikely; the bound exists so a broken entropy source
// degrades into a logged 500 instead of a spin.
const tokenIssueAttempts = 5

// Handler holds the dispatcher's dependencies. authn is nil when no
// directory is configured, matching policy.AuthEnabled.
type Handler struct {
	policy auth.Policy
	store  auth.SessionStore
	authn  auth.Authenticator
	livy   livy.Client
}

// NewHandler wires the dispatcher. authn may be nil, which disables the
// whole authentication surface.
func NewHandler(store auth.SessionStore, authn auth.Authenticator, client livy.Client) *Handler {
	return &Handler{
		policy: auth.Policy{AuthEnabled: authn != nil},
		store:  store,
		authn:  authn,
		livy:   client,
	}
}

// caller returns the resolved identity as a pointer, nil when absent.
func caller(r *http.Request) *auth.Identity {
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		return &id
	}
	return nil
}

// Index serves the session table page, or bounces unauthenticated
// callers to the login page with their stale cookie cleared.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if h.policy.Unauthenticated(caller(r)) {
		redirect(w, "/login", true)
		return
	}
	writeHTML(w, frontend.Index)
}

// LoginPage serves the login form. Callers who are already signed in,
// and every caller in auth-disabled mode, are sent back to the index.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if !h.policy.AuthEnabled || caller(r) != nil {
		redirect(w, "/", false)
		return
	}
	writeHTML(w, frontend.Login)
}

// Login processes the credential form. Success issues a fresh session
// token, stores the identity under it, sets the cookie, and sends the
// browser to the index; failure sends it back to the login form with
// the failure marker. Both outcomes are 303 so the browser re-requests
// with GET.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.policy.AuthEnabled || caller(r) != nil {
		redirectSeeOther(w, "/", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		badRequest(w)
		return
	}
	username := r.PostForm.Get("uid")
	password := r.PostForm.Get("password")

	id, err := h.authn.Authenticate(r.Context(), username, password)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		logging.Warn().
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Str("uid", username).
			Msg("Login rejected")
		redirectSeeOther(w, "/login?result=failed", nil)
		return
	}

	var token string
	for attempt := 0; ; attempt++ {
		token = auth.IssueToken()
		err = h.store.Insert(token, id)
		if err == nil {
			break
		}
		if !errors.Is(err, auth.ErrTokenConflict) || attempt+1 >= tokenIssueAttempts {
			internalError(w, r, err)
			return
		}
	}

	metrics.RecordAuthAttempt(true)
	metrics.UserSessionsActive.Inc()
	logging.Info().
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Str("uid", id.Subject).
		Bool("is_admin", id.Privileged).
		Msg("Login succeeded")
	redirectSeeOther(w, "/", auth.SessionCookie(token))
}

// Logout removes the caller's session entry, if any, clears the cookie,
// and redirects. In auth-disabled mode there is nothing to remove and
// the destination is the index; otherwise it is the login page. The
// token actually presented is what gets removed, so a stale cookie
// cannot evict another caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.policy.AuthEnabled {
		redirect(w, "/", true)
		return
	}

	if token := auth.ExtractToken(r.Header); token != "" {
		if _, ok := h.store.Lookup(token); ok {
			h.store.Remove(token)
			metrics.UserSessionsActive.Dec()
		}
	}
	redirect(w, "/login", true)
}

// User reports who the caller is. Auth-disabled mode has no identity
// and answers with an empty object; unauthenticated callers get 401.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	id := caller(r)
	if h.policy.Unauthenticated(id) {
		unauthorized(w)
		return
	}
	if id == nil {
		writeJSON(w, struct{}{})
		return
	}
	writeJSON(w, id)
}

// Sessions lists the Livy sessions the caller may see, logs stripped,
// as a bare JSON array.
func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	id := caller(r)
	if h.policy.Unauthenticated(id) {
		unauthorized(w)
		return
	}

	sessions, err := h.livy.ListSessions(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, h.policy.VisibleSessions(id, sessions))
}

// KillSession terminates one Livy session, after an ownership check for
// non-privileged callers. The ownership check fetches the live target
// from Livy rather than trusting anything the client sent; a fetch
// failure rejects rather than guesses.
func (h *Handler) KillSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w)
		return
	}

	id := caller(r)
	if h.policy.Unauthenticated(id) {
		unauthorized(w)
		return
	}

	var target *livy.Session
	if h.policy.NeedsKillTarget(id) {
		session, err := h.livy.GetSession(r.Context(), sessionID)
		if err != nil {
			logging.Warn().
				Str("request_id", logging.RequestIDFromContext(r.Context())).
				Int("session_id", sessionID).
				Err(err).
				Msg("Ownership check fetch failed, rejecting kill")
			unauthorized(w)
			return
		}
		target = session
	}

	if !h.policy.CanKill(id, target) {
		unauthorized(w)
		return
	}

	if err := h.livy.KillSession(r.Context(), sessionID); err != nil {
		internalError(w, r, err)
		return
	}

	logging.Info().
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Int("session_id", sessionID).
		Msg("Session killed")
	writeJSON(w, struct{}{})
}
