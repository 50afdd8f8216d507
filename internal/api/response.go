// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/livygate/livygate/internal/auth"
	"github.com/livygate/livygate/internal/logging"
)

// writeJSON serializes v and writes it with the JSON content type.
// Serialization failures are logged and rendered as a bare 500; by that
// point nothing may leak into the body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("Failed to encode JSON response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// writeHTML writes an HTML page.
func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		logging.Err(err).Msg("Failed to write HTML response")
	}
}

// redirect issues a 307 Temporary Redirect, optionally clearing the
// session cookie. Used for the GET navigation flows.
func redirect(w http.ResponseWriter, location string, clearCookie bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Location", location)
	if clearCookie {
		http.SetCookie(w, auth.ClearCookie())
	}
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// redirectSeeOther issues a 303 See Other, optionally setting a cookie.
// Used for POST /login outcomes so the browser follows up with a GET.
func redirectSeeOther(w http.ResponseWriter, location string, cookie *http.Cookie) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Location", location)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	w.WriteHeader(http.StatusSeeOther)
}

// unauthorized writes a 401 with an empty body.
func unauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}

// badRequest writes a 400 with an empty body.
func badRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
}

// notFound writes a 404 with an empty body.
func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// internalError logs the failure operator-side with full detail, then
// writes a bare 500. No detail ever reaches the caller.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Err(err).
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")
	w.WriteHeader(http.StatusInternalServerError)
}
