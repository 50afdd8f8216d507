// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package auth

import (
	"github.com/livygate/livygate/internal/livy"
)

// Policy holds the pure authorization decision functions. A request is in
// one of three modes:
//
//   - auth-disabled: no directory configured; every caller is authorized
//     and identity is always absent.
//   - auth-enabled, unauthenticated: directory configured but the caller
//     presents no resolvable session token.
//   - auth-enabled, authenticated: a token resolved to an Identity.
//
// AuthEnabled is fixed at startup from the presence of the LDAP block and
// never changes while the process runs.
type Policy struct {
	AuthEnabled bool
}

// Unauthenticated reports whether the caller is in the auth-enabled,
// unauthenticated mode, the only mode in which protected operations are
// rejected outright.
func (p Policy) Unauthenticated(id *Identity) bool {
	return p.AuthEnabled && id == nil
}

// VisibleSessions filters sessions down to what the caller may see and
// strips the log field from every session.
//
// Auth-disabled and privileged callers see everything. Unauthenticated
// callers see nothing (the dispatcher rejects them before the upstream
// call; this is the belt to that suspender). Other callers see exactly
// the sessions whose proxyUser equals their subject; a session with no
// proxyUser is never visible to them.
//
// The log strip applies unconditionally, privileged or not.
func (p Policy) VisibleSessions(id *Identity, sessions []livy.Session) []livy.Session {
	visible := make([]livy.Session, 0, len(sessions))
	for _, s := range sessions {
		if !p.canSee(id, &s) {
			continue
		}
		s.Log = nil
		visible = append(visible, s)
	}
	return visible
}

func (p Policy) canSee(id *Identity, s *livy.Session) bool {
	if !p.AuthEnabled {
		return true
	}
	if id == nil {
		return false
	}
	if id.Privileged {
		return true
	}
	return s.ProxyUser != nil && *s.ProxyUser == id.Subject
}

// CanKill decides whether the caller may kill the target session.
//
// Auth-disabled mode permits everything. A privileged caller may kill any
// session without the target being fetched, so target may be nil for
// them. A non-privileged caller needs the freshly fetched target: a nil
// target (fetch failed), an absent proxyUser, or a proxyUser other than
// the caller's subject all reject.
func (p Policy) CanKill(id *Identity, target *livy.Session) bool {
	if !p.AuthEnabled {
		return true
	}
	if id == nil {
		return false
	}
	if id.Privileged {
		return true
	}
	return target != nil && target.ProxyUser != nil && *target.ProxyUser == id.Subject
}

// NeedsKillTarget reports whether the kill decision for this caller
// requires fetching the target session first. Only non-privileged
// authenticated callers pay the extra upstream read.
func (p Policy) NeedsKillTarget(id *Identity) bool {
	return p.AuthEnabled && id != nil && !id.Privileged
}
