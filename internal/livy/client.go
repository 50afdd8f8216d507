// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package livy is the narrow client for the upstream Livy REST API:
// list sessions, fetch one session, kill one session. Nothing is cached;
// every call goes to the wire.
package livy

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/livygate/livygate/internal/config"
)

// Session is a Livy session as returned by the REST API. Authorization
// only inspects ID and ProxyUser; the rest is passed through to the
// caller, except Log which is always stripped before serialization.
type Session struct {
	ID        int      `json:"id"`
	ProxyUser *string  `json:"proxyUser,omitempty"`
	Kind      string   `json:"kind,omitempty"`
	State     string   `json:"state,omitempty"`
	Log       []string `json:"log,omitempty"`
	AppID     *string  `json:"appId,omitempty"`
}

// sessionList is the envelope Livy wraps around GET /sessions.
type sessionList struct {
	From     int       `json:"from"`
	Total    int       `json:"total"`
	Sessions []Session `json:"sessions"`
}

// Client lists, fetches, and kills Livy sessions.
type Client interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id int) (*Session, error)
	KillSession(ctx context.Context, id int) error
}

// HTTPClient is the direct HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a Livy client for the configured endpoint.
func NewHTTPClient(cfg *config.LivyConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// ListSessions fetches all sessions from the Livy server.
func (c *HTTPClient) ListSessions(ctx context.Context) ([]Session, error) {
	body, err := c.do(ctx, http.MethodGet, "/sessions")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var list sessionList
	if err := json.NewDecoder(body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode session list: %w", err)
	}
	return list.Sessions, nil
}

// GetSession fetches a single session by id.
func (c *HTTPClient) GetSession(ctx context.Context, id int) (*Session, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", id))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var session Session
	if err := json.NewDecoder(body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// KillSession deletes the session with the given id.
func (c *HTTPClient) KillSession(ctx context.Context, id int) error {
	body, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", id))
	if err != nil {
		return err
	}
	return body.Close()
}

// do executes a request against the Livy API and returns the response
// body on 2xx status.
func (c *HTTPClient) do(ctx context.Context, method, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("livy request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("livy %s %s returned status %d: %s", method, path, resp.StatusCode, detail)
	}

	return resp.Body, nil
}
