// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/livygate/livygate/internal/config"
	"github.com/livygate/livygate/internal/logging"
)

// LDAPAuthenticator authenticates against a directory service. Each call
// opens a fresh connection, binds as the user, runs the admin-group
// membership search, and closes the connection; there is no pooling.
type LDAPAuthenticator struct {
	conf config.LDAPConfig
}

// NewLDAPAuthenticator creates an authenticator for the configured directory.
func NewLDAPAuthenticator(conf config.LDAPConfig) *LDAPAuthenticator {
	return &LDAPAuthenticator{conf: conf}
}

// Authenticate binds as the user and classifies their role.
//
// The bind DN is the configured template with its single {} placeholder
// replaced by the username. Privileged is true iff the membership search
// under the admin group DN returns exactly one entry; zero entries and
// two or more entries both classify as non-privileged. That
// equality-to-one rule is a behavioral contract, not an accident.
//
// Every failure mode (unreachable directory, bad credentials, malformed
// template) collapses to ErrAuthRejected. The caller never learns which;
// the detail is logged operator-side only.
func (a *LDAPAuthenticator) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	userDN := bindDN(a.conf.UserDNTemplate, username)

	conn, err := ldap.DialURL(a.conf.URL)
	if err != nil {
		logging.Err(err).Str("url", a.conf.URL).Msg("LDAP dial failed")
		return Identity{}, ErrAuthRejected
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetTimeout(time.Until(deadline))
	}

	if err := conn.Bind(userDN, password); err != nil {
		logging.Err(err).Str("user", username).Msg("LDAP bind rejected")
		return Identity{}, ErrAuthRejected
	}

	search := ldap.NewSearchRequest(
		a.conf.AdminGroupDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf("(member=%s)", ldap.EscapeFilter(userDN)),
		nil,
		nil,
	)

	result, err := conn.Search(search)
	if err != nil {
		logging.Err(err).Str("user", username).Msg("LDAP admin-group search failed")
		return Identity{}, ErrAuthRejected
	}

	return Identity{Subject: username, Privileged: isPrivileged(len(result.Entries))}, nil
}

// bindDN builds the bind DN from the configured template, replacing its
// single {} placeholder with the username.
func bindDN(template, username string) string {
	return strings.Replace(template, "{}", username, 1)
}

// isPrivileged classifies the admin-group search result. Exactly one
// match means administrator; zero or several do not.
func isPrivileged(matches int) bool {
	return matches == 1
}
