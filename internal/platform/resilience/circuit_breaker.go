// Package resilience guards calls to remote dependencies.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// BreakerConfig tunes a Breaker. Zero values fall back to 5 failures,
// a 15s open window and 2 half-open probes.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 2
	}
	return c
}

// Breaker opens after FailureThreshold consecutive failures, rejects calls
// for OpenTimeout, then lets HalfOpenMaxReq probes through. All probes
// succeeding closes it again; any probe failing reopens it.
// A disabled Breaker runs every call and stays closed.
type Breaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	probesOK int
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// Execute runs fn when the breaker admits it. Only errors for which
// isFailure reports true count against the breaker; a nil isFailure counts
// every error. Rejected calls return ErrCircuitOpen without running fn.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error, isFailure func(error) bool) error {
	if !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	b.record(err == nil || (isFailure != nil && !isFailure(err)))
	return err
}

// State reports an expired open window as half-open before the next call
// moves it there.
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && b.windowElapsed() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if !b.windowElapsed() {
			return ErrCircuitOpen
		}
		b.set(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if ok {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.set(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if !ok {
			b.set(CircuitStateOpen)
			return
		}
		b.probesOK++
		if b.probesOK >= b.cfg.HalfOpenMaxReq && b.inFlight == 0 {
			b.set(CircuitStateClosed)
		}
	case CircuitStateOpen:
		// a call admitted before the breaker opened came back late
		if !ok {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) windowElapsed() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *Breaker) set(state CircuitState) {
	b.state = state
	b.failures = 0
	b.inFlight = 0
	b.probesOK = 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.openedAt = time.Time{}
	}
}
