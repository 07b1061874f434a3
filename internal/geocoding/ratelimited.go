package geocoding

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/cabfare/internal/models"
)

// Waiter blocks until the next outbound call is allowed.
type Waiter interface {
	Wait(ctx context.Context) error
}

// RateLimited spaces every lookup of the wrapped Geocoder through a Waiter.
type RateLimited struct {
	next   Geocoder
	waiter Waiter
	log    *slog.Logger
}

// NewRateLimited wraps next so that each Reverse and Forward call first waits
// on waiter. When the wait fails the lookup is reported as failed and next is
// never called.
func NewRateLimited(next Geocoder, waiter Waiter, log *slog.Logger) *RateLimited {
	return &RateLimited{next: next, waiter: waiter, log: log}
}

// Reverse waits for the limiter, then delegates.
func (rl *RateLimited) Reverse(ctx context.Context, coord models.Coordinate) models.LookupResult {
	if err := rl.waiter.Wait(ctx); err != nil {
		rl.log.WarnContext(ctx, "Reverse geocoding skipped", "error", err)
		return models.LookupFailure(ReasonReverseFailed)
	}

	return rl.next.Reverse(ctx, coord)
}

// Forward waits for the limiter, then delegates.
func (rl *RateLimited) Forward(ctx context.Context, address string) models.ForwardResult {
	if err := rl.waiter.Wait(ctx); err != nil {
		rl.log.WarnContext(ctx, "Geocoding skipped", "error", err)
		return forwardFailure(ReasonForwardFailed)
	}

	return rl.next.Forward(ctx, address)
}
