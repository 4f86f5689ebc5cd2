// Package breaker stops calling a failing dependency for a cool-down period.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tair/pos-backoffice/pkg/logger"
)

// ErrOpen is returned without calling the dependency while the circuit is open
var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Breaker opens after maxFailures consecutive failures, lets a probe through once
// cooldown has elapsed and closes again after halfOpenSuccesses successful probes.
type Breaker struct {
	name              string
	maxFailures       int
	cooldown          time.Duration
	halfOpenSuccesses int
	now               func() time.Time

	mu              sync.Mutex
	state           State
	failures        int
	successes       int
	lastStateChange time.Time
}

func New(name string, maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		name:              name,
		maxFailures:       maxFailures,
		cooldown:          cooldown,
		halfOpenSuccesses: 1,
		now:               time.Now,
		state:             StateClosed,
		lastStateChange:   time.Now(),
	}
}

// Call runs fn unless the circuit is open. Context cancellation of the caller is
// not counted as a dependency failure.
func (b *Breaker) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if !b.allow() {
		return fmt.Errorf("%w: %s", ErrOpen, b.name)
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.onSuccess()
	case ctx.Err() != nil:
	default:
		b.onFailure()
	}
	return err
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.lastStateChange) >= b.cooldown {
		b.transition(StateHalfOpen)
		logger.Logger.Info().Str("circuit", b.name).Msg("Circuit breaker half-open")
	}
	return b.state != StateOpen
}

func (b *Breaker) onFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.maxFailures {
		b.transition(StateOpen)
		logger.Logger.Error().
			Str("circuit", b.name).
			Int("failures", b.failures).
			Int("threshold", b.maxFailures).
			Msg("Circuit breaker opened")
	}
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.halfOpenSuccesses {
			b.transition(StateClosed)
			logger.Logger.Info().Str("circuit", b.name).Msg("Circuit breaker closed")
		}
	case StateClosed:
		b.failures = 0
	}
}

func (b *Breaker) transition(to State) {
	b.state = to
	b.lastStateChange = b.now()
	b.successes = 0
	if to == StateClosed {
		b.failures = 0
	}
}
