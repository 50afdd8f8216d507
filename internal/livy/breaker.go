// Livygate - Web UI for Managing Apache Livy Sessions
// Copyright 2026 The Livygate Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/livygate/livygate

package livy

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/livygate/livygate/internal/logging"
	"github.com/livygate/livygate/internal/metrics"
)

// BreakerClient wraps a Client with a circuit breaker so a down or slow
// Livy server sheds load fast instead of tying up request goroutines.
// A breaker rejection surfaces to the caller as an ordinary upstream
// error, which the dispatcher renders as an internal error.
type BreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// NewBreakerClient wraps client with a circuit breaker.
// The breaker opens after a 60% failure rate over at least 10 requests,
// waits 2 minutes before probing, and allows 3 probes in half-open state.
func NewBreakerClient(client Client) *BreakerClient {
	name := "livy-api"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening Livy circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Livy circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitionsTotal.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: name}
}

// ListSessions fetches all sessions through the breaker.
func (b *BreakerClient) ListSessions(ctx context.Context) ([]Session, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return b.client.ListSessions(ctx)
	})
	metrics.RecordLivyRequest("list_sessions", err)
	if err != nil {
		return nil, err
	}
	return result.([]Session), nil
}

// GetSession fetches one session through the breaker.
func (b *BreakerClient) GetSession(ctx context.Context, id int) (*Session, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return b.client.GetSession(ctx, id)
	})
	metrics.RecordLivyRequest("get_session", err)
	if err != nil {
		return nil, err
	}
	return result.(*Session), nil
}

// KillSession kills one session through the breaker.
func (b *BreakerClient) KillSession(ctx context.Context, id int) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.client.KillSession(ctx, id)
	})
	metrics.RecordLivyRequest("kill_session", err)
	return err
}

// stateToFloat maps breaker states to the metric encoding.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
