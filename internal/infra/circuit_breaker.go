package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding the SMTP relay. Consecutive delivery failures
// trip it open so workers fail fast instead of stacking up on timeouts;
// after a cooldown a probe send decides whether it closes again.

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned by Execute while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker open")

type CircuitBreaker struct {
	mu        sync.Mutex
	state     BreakerState
	failures  int
	probes    int
	trippedAt time.Time

	failureThreshold int
	probeThreshold   int
	cooldown         time.Duration
}

// NewCircuitBreaker starts closed. Non-positive arguments fall back to
// 5 failures to trip, 2 probe successes to close, 60s cooldown.
func NewCircuitBreaker(failureThreshold, probeThreshold int, cooldown time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if probeThreshold <= 0 {
		probeThreshold = 2
	}
	if cooldown <= 0 {
		cooldown = 60 * time.Second
	}
	return &CircuitBreaker{
		state:            BreakerClosed,
		failureThreshold: failureThreshold,
		probeThreshold:   probeThreshold,
		cooldown:         cooldown,
	}
}

// State reports the current state, moving open → half-open once the
// cooldown has elapsed.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == BreakerOpen && time.Since(cb.trippedAt) >= cb.cooldown {
		cb.state = BreakerHalfOpen
		cb.probes = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open, recording the outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	cb.trippedAt = time.Now()

	switch cb.state {
	case BreakerClosed:
		if cb.failures >= cb.failureThreshold {
			cb.state = BreakerOpen
			cb.probes = 0
		}
	case BreakerHalfOpen:
		cb.state = BreakerOpen
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case BreakerClosed:
		cb.failures = 0
	case BreakerHalfOpen:
		cb.probes++
		if cb.probes >= cb.probeThreshold {
			cb.state = BreakerClosed
			cb.failures = 0
			cb.probes = 0
		}
	}
}
