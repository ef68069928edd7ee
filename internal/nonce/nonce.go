// Package nonce generates strictly increasing request nonces.
package nonce

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Generator derives nonces from wall-clock milliseconds plus a counter that
// grows by one on every call. Read and increment happen under one lock, so
// concurrent callers never see equal or decreasing values.
type Generator struct {
	mu      sync.Mutex
	now     Clock
	counter int64
	last    int64
}

// New creates a Generator backed by time.Now.
func New() *Generator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Generator with the given clock.
func NewWithClock(clock Clock) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{now: clock}
}

// Next returns the next nonce.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixMilli() + g.counter
	g.counter++

	// the clock may step backwards; the exchange only accepts growth
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return n
}

// Count returns how many nonces have been issued.
func (g *Generator) Count() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// Last returns the most recently issued nonce, or 0.
func (g *Generator) Last() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}
