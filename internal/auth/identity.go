// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package auth implements the session-and-authorization layer: directory
// authentication, the session token codec, the concurrent session store,
// and the ownership/role policy over Livy sessions.
package auth

import (
	"context"
	"errors"
)

// Identity is the result of successful authentication: the subject's
// unique name plus the administrative-privilege flag. Immutable once
// constructed, held in memory only for the process lifetime.
type Identity struct {
	// Subject is the unique user identifier, never empty.
	Subject string `json:"uid"`

	// Privileged is true if the subject belongs to the administrators group.
	Privileged bool `json:"is_admin"`
}

// Standard authentication errors.
var (
	// ErrAuthRejected covers bad credentials and unreachable directories
	// alike; callers are never told which.
	ErrAuthRejected = errors.New("authentication rejected")
)

// Authenticator checks a username/password pair against a directory and
// classifies the subject's role.
type Authenticator interface {
	// Authenticate returns the subject's Identity, or ErrAuthRejected.
	// Never partial success: any bind or search failure rejects.
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// identityKey is the context key for the resolved caller identity.
type identityKey struct{}

// WithIdentity returns a context carrying the caller's resolved Identity.
// The dispatcher attaches this per request; handlers read it back with
// IdentityFromContext.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller's Identity, if one was resolved.
// Absence is the normal state in auth-disabled mode and for requests
// without a valid session token; it is never an error.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
