// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package auth

import (
	"errors"
	"sync"
)

// ErrTokenConflict is returned by Insert when the token already exists.
// Tokens are high-entropy, so callers regenerate and retry; the conflict
// never reaches a user.
var ErrTokenConflict = errors.New("session token already exists")

// SessionStore maps session tokens to authenticated identities. All
// methods are safe for concurrent use from independent request goroutines.
type SessionStore interface {
	// Insert stores the identity under token. Returns ErrTokenConflict if
	// the token is already present; an existing entry is never overwritten.
	Insert(token string, id Identity) error

	// Lookup returns a copy of the identity stored under token.
	Lookup(token string) (Identity, bool)

	// Remove deletes the entry for token. Removing an absent token is a no-op.
	Remove(token string)
}

// MemoryStore is the in-memory SessionStore. Entries live for the process
// lifetime only: created on login, removed on logout, lost on restart.
// A single exclusive lock serializes every operation; hold times are the
// O(1) map operations.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Identity
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Identity),
	}
}

// Insert stores the identity under token, failing on collision.
func (s *MemoryStore) Insert(token string, id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[token]; exists {
		return ErrTokenConflict
	}
	s.sessions[token] = id
	return nil
}

// Lookup returns a copy of the identity stored under token.
func (s *MemoryStore) Lookup(token string) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sessions[token]
	return id, ok
}

// Remove deletes the entry for token, if any.
func (s *MemoryStore) Remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

// Len reports the number of live sessions, for the session gauge.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
