// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "_lmsid"

// cookieTTL is how long an issued session cookie is valid client-side.
// Server-side entries have no timer; the cookie expiry is advisory only.
const cookieTTL = 7 * 24 * time.Hour

// IssueToken generates a new unguessable session token: a version 4 UUID,
// 128 bits of cryptographic randomness rendered as a string.
func IssueToken() string {
	return uuid.New().String()
}

// SessionCookie builds the Set-Cookie value carrying the given token,
// valid for seven days on path /.
//
// The cookie deliberately carries no Secure or HttpOnly attributes:
// deployments behind plain HTTP rely on that, so hardening it here would
// be a behavior change.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:    CookieName,
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(cookieTTL),
	}
}

// ClearCookie builds a Set-Cookie value that expires one second in the
// past, forcing immediate client-side removal.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:    CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Second),
	}
}

// ExtractToken scans every Cookie header for the session cookie and
// returns its value, or "" if absent.
//
// Pairs are split on ";", trimmed, and split on the first "=". If the
// cookie name appears more than once, the last occurrence wins. Malformed
// pairs without "=" are ignored.
func ExtractToken(headers http.Header) string {
	var token string
	for _, header := range headers.Values("Cookie") {
		for _, pair := range strings.Split(header, ";") {
			pair = strings.TrimSpace(pair)
			name, value, found := strings.Cut(pair, "=")
			if found && name == CookieName {
				token = value
			}
		}
	}
	return token
}
