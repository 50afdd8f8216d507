// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

// Package frontend embeds the HTML pages served by the UI.
package frontend

import _ "embed"

// Index is the main session-list page.
//
//go:embed index.html
var Index []byte

// Login is the login form page.
//
//go:embed login.html
var Login []byte
