package pacing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultDelay is the pause before each category request
	DefaultDelay = 1 * time.Second

	// DefaultMaxDelay caps the adaptive pacer
	DefaultMaxDelay = 30 * time.Second

	ModeFixed    = "fixed"
	ModeAdaptive = "adaptive"
)

// Pacer spaces out requests to the trivia API. Wait is called before every
// category request; Observe reports whether the request was throttled.
type Pacer interface {
	Wait(ctx context.Context) error
	Observe(throttled bool)
}

// New returns the pacer for a configured mode. An empty mode is fixed.
func New(mode string, delay time.Duration) (Pacer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeFixed:
		return NewFixed(delay), nil
	case ModeAdaptive:
		return NewAdaptive(delay, DefaultMaxDelay), nil
	default:
		return nil, fmt.Errorf("unknown pacing mode %q (want %s or %s)", mode, ModeFixed, ModeAdaptive)
	}
}

// Fixed waits the same delay every time and ignores observations.
type Fixed struct {
	Delay time.Duration
}

// NewFixed creates a fixed pacer. A negative delay means DefaultDelay; zero
// disables pacing.
func NewFixed(delay time.Duration) *Fixed {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Fixed{Delay: delay}
}

// Wait blocks for Delay or until ctx is done
func (f *Fixed) Wait(ctx context.Context) error {
	return sleep(ctx, f.Delay)
}

// Observe is a no-op for a fixed pacer
func (f *Fixed) Observe(bool) {}

// Adaptive waits the base delay while requests succeed and backs off
// exponentially while the API keeps throttling.
type Adaptive struct {
	mu      sync.Mutex
	base    time.Duration
	next    time.Duration
	backoff *backoff.ExponentialBackOff
}

// NewAdaptive creates an adaptive pacer growing from base up to max.
func NewAdaptive(base, max time.Duration) *Adaptive {
	if base <= 0 {
		base = DefaultDelay
	}
	if max < base {
		max = base
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.MaxInterval = max
	b.Multiplier = 2
	b.RandomizationFactor = 0
	// never give up; the setup decides when to stop
	b.MaxElapsedTime = 0
	restart(b)

	return &Adaptive{base: base, next: base, backoff: b}
}

// Next returns the delay the next Wait will use
func (a *Adaptive) Next() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

// Wait blocks for the current delay or until ctx is done
func (a *Adaptive) Wait(ctx context.Context) error {
	return sleep(ctx, a.Next())
}

// Observe grows the delay after a throttled request and resets it after a
// successful one.
func (a *Adaptive) Observe(throttled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !throttled {
		restart(a.backoff)
		a.next = a.base
		return
	}
	if d := a.backoff.NextBackOff(); d != backoff.Stop {
		a.next = d
	}
}

// restart rewinds b and consumes the base interval, which the pacer
// already waits while nothing is throttled
func restart(b *backoff.ExponentialBackOff) {
	b.Reset()
	b.NextBackOff()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
