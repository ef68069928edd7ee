// Package ratelimit throttles calls against the exchange's per-IP limit,
// which is shared by the public and trading endpoints.
package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Endpoint identifies which API endpoint a call is for.
type Endpoint int

const (
	EndpointPublic Endpoint = iota
	EndpointTrading
)

// String returns "public" or "trading".
func (e Endpoint) String() string {
	return [...]string{"public", "trading"}[e]
}

// RateLimiter is a token bucket shared by both endpoints.
type RateLimiter struct {
	limiter *rate.Limiter
	metrics [2]counters
}

type counters struct {
	allowed atomic.Int64
	denied  atomic.Int64
}

// New creates a RateLimiter allowing requests per period, with a burst of requests.
func New(requests int, period time.Duration) *RateLimiter {
	rps := float64(requests) / period.Seconds()
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), requests),
	}
}

// Wait blocks until a call to endpoint may proceed or the context is done.
func (r *RateLimiter) Wait(ctx context.Context, endpoint Endpoint) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.metrics[endpoint].denied.Add(1)
		return err
	}
	r.metrics[endpoint].allowed.Add(1)
	return nil
}

// Metrics returns a snapshot of the current rate limiter statistics.
func (r *RateLimiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		PublicAllowed:  r.metrics[EndpointPublic].allowed.Load(),
		PublicDenied:   r.metrics[EndpointPublic].denied.Load(),
		TradingAllowed: r.metrics[EndpointTrading].allowed.Load(),
		TradingDenied:  r.metrics[EndpointTrading].denied.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of rate limiter statistics.
type MetricsSnapshot struct {
	PublicAllowed  int64
	PublicDenied   int64
	TradingAllowed int64
	TradingDenied  int64
}
