// Package ratelimit spaces outbound calls to a third-party service.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// MinInterval is the spacing Nominatim's usage policy requires between requests.
const MinInterval = time.Second

// Limiter admits one call per interval. The first call is admitted at once,
// every following call waits until interval has passed since the previous
// admitted one. A single Limiter is meant to be shared by every caller of the
// same provider in the process.
type Limiter struct {
	limiter  *rate.Limiter
	clock    Clock
	interval time.Duration
	log      *slog.Logger
	observe  func(time.Duration)
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the real clock.
func WithClock(clock Clock) Option {
	return func(l *Limiter) { l.clock = clock }
}

// WithWaitObserver registers a callback receiving the delay paid by every Wait.
func WithWaitObserver(observe func(time.Duration)) Option {
	return func(l *Limiter) { l.observe = observe }
}

// New creates a Limiter. Intervals below MinInterval are raised to it.
func New(interval time.Duration, log *slog.Logger, opts ...Option) *Limiter {
	if interval < MinInterval {
		interval = MinInterval
	}

	lim := &Limiter{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		clock:    RealClock(),
		interval: interval,
		log:      log,
	}
	for _, opt := range opts {
		opt(lim)
	}

	return lim
}

// Interval returns the enforced spacing between calls.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the caller may issue its request or ctx is done.
// When ctx ends first the reserved slot is released for the next caller.
func (l *Limiter) Wait(ctx context.Context) error {
	now := l.clock.Now()
	reservation := l.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return fmt.Errorf("rate limit exceeded: reservation refused for interval %s", l.interval)
	}

	delay := reservation.DelayFrom(now)
	if l.observe != nil {
		l.observe(delay)
	}
	if delay <= 0 {
		return nil
	}

	l.log.DebugContext(ctx, "Waiting for rate limiter", "delay", delay)

	select {
	case <-l.clock.After(delay):
		return nil
	case <-ctx.Done():
		reservation.CancelAt(l.clock.Now())
		return fmt.Errorf("rate limit exceeded: %w", ctx.Err())
	}
}
