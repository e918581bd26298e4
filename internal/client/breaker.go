package client

import (
	stderrors "errors"
	"sync"
	"time"
)

// ErrAPIUnavailable is returned without contacting the API while the breaker is open
var ErrAPIUnavailable = stderrors.New("ledger API unavailable, retry shortly")

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// BreakerConfig tunes how many consecutive network failures open the breaker
// and how long it stays open before a trial request is let through.
type BreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:  5,
		ResetTimeout: 10 * time.Second,
	}
}

// breaker counts network failures only; validation and unauthorized answers
// prove the API is up.
type breaker struct {
	mu       sync.Mutex
	cfg      BreakerConfig
	state    breakerState
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

func newBreaker(cfg BreakerConfig) *breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = DefaultBreakerConfig().ResetTimeout
	}
	return &breaker{cfg: cfg, now: time.Now}
}

// allow reports whether a request may be sent. After ResetTimeout one trial request is allowed.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if b.now().Sub(b.openedAt) < b.cfg.ResetTimeout {
			return false
		}
		b.state = breakerHalfOpen
		b.probing = true
		return true
	case breakerHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return true
	}
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = breakerClosed
	b.failures = 0
	b.probing = false
}

// recordFailure returns true when this failure opened the breaker
func (b *breaker) recordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if b.state == breakerHalfOpen {
		b.state = breakerOpen
		b.openedAt = b.now()
		return true
	}

	b.failures++
	if b.state == breakerClosed && b.failures >= b.cfg.MaxFailures {
		b.state = breakerOpen
		b.openedAt = b.now()
		return true
	}
	return false
}

// abandon releases a trial request whose request was cancelled by the caller
func (b *breaker) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
}

func (b *breaker) current() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
