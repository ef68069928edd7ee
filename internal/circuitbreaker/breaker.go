// Package circuitbreaker stops calling the exchange after repeated
// transport failures and probes again once a cool-down has passed.
package circuitbreaker

import (
	"sync"
	"time"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	FailThreshold    int           `json:"fail_threshold"`
	SuccessThreshold int           `json:"success_threshold"`
	Timeout          time.Duration `json:"timeout"`
	// Now defaults to time.Now.
	Now func() time.Time `json:"-"`
}

type Breaker struct {
	mu               sync.Mutex
	state            State
	failures         int
	successes        int
	openedAt         time.Time
	failThreshold    int
	successThreshold int
	timeout          time.Duration
	now              func() time.Time
	stateChanges     int
	rejected         int64
}

func New(config Config) *Breaker {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Breaker{
		failThreshold:    config.FailThreshold,
		successThreshold: config.SuccessThreshold,
		timeout:          config.Timeout,
		now:              now,
	}
}

// Allow reports whether a call may be attempted. An open breaker moves to
// half-open once the timeout has elapsed since it opened.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.timeout {
			b.rejected++
			return false
		}
		b.transitionTo(StateHalfOpen)
	}
	return true
}

// Record feeds the outcome of an attempted call. Only transport failures
// should be recorded as failures; a reply from the exchange is a success
// even when it carries an error field.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.failThreshold {
			b.open()
		}
	case StateHalfOpen:
		if !success {
			b.open()
			return
		}
		b.successes++
		if b.successes >= b.successThreshold {
			b.transitionTo(StateClosed)
		}
	case StateOpen:
		// outcome of a call admitted before the breaker opened
	}
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.transitionTo(StateOpen)
}

func (b *Breaker) transitionTo(newState State) {
	b.state = newState
	b.failures = 0
	b.successes = 0
	b.stateChanges++
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
}

func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) Metrics() MetricsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return MetricsSnapshot{
		Rejected:     b.rejected,
		StateChanges: b.stateChanges,
		CurrentState: b.state.String(),
	}
}

type MetricsSnapshot struct {
	Rejected     int64
	StateChanges int
	CurrentState string
}
