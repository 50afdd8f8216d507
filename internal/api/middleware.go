// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/livygate/livygate/internal/auth"
	"github.com/livygate/livygate/internal/logging"
	"github.com/livygate/livygate/internal/metrics"
)

// requestIDMiddleware attaches a request ID to the context and echoes it
// in the X-Request-ID response header. An incoming X-Request-ID is
// honored so IDs correlate across proxies.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// noCacheMiddleware stamps every response, error paths included, with
// the caching and connection headers the original server promised.
// Session listings are per-user; a shared cache returning one user's
// rows to another would be a leak.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "private, no-store, no-cache, must-revalidate")
		w.Header().Set("Connection", "keep-alive")

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler so the
// metrics middleware can label the request counter with it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

// metricsMiddleware records request counts, latency, and the in-flight
// gauge for every route.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), time.Since(start))
	})
}

// identityMiddleware resolves the caller's session token, if any, to an
// Identity and attaches it to the request context. An absent, malformed,
// or unknown token leaves the context bare; handlers decide what that
// means per route. In auth-disabled mode this is a no-op.
func identityMiddleware(store auth.SessionStore, authEnabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authEnabled {
				next.ServeHTTP(w, r)
				return
			}

			if token := auth.ExtractToken(r.Header); token != "" {
				if id, ok := store.Lookup(token); ok {
					r = r.WithContext(auth.WithIdentity(r.Context(), id))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
