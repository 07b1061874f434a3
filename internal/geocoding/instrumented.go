package geocoding

import (
	"context"
	"time"

	"github.com/UnknownOlympus/cabfare/internal/metrics"
	"github.com/UnknownOlympus/cabfare/internal/models"
)

// Instrumented records lookup outcomes and durations of the wrapped Geocoder.
type Instrumented struct {
	next     Geocoder
	metrics  *metrics.Metrics
	provider string
}

// NewInstrumented wraps next with Prometheus metrics labeled by provider.
func NewInstrumented(next Geocoder, m *metrics.Metrics, provider string) *Instrumented {
	return &Instrumented{next: next, metrics: m, provider: provider}
}

// Reverse delegates and records the result.
func (in *Instrumented) Reverse(ctx context.Context, coord models.Coordinate) models.LookupResult {
	start := time.Now()
	result := in.next.Reverse(ctx, coord)
	in.observe(metrics.OperationReverse, start, result)

	return result
}

// Forward delegates and records the result.
func (in *Instrumented) Forward(ctx context.Context, address string) models.ForwardResult {
	start := time.Now()
	result := in.next.Forward(ctx, address)
	in.observe(metrics.OperationForward, start, result.Lookup)

	return result
}

func (in *Instrumented) observe(operation string, start time.Time, result models.LookupResult) {
	in.metrics.RequestSeconds.WithLabelValues(in.provider, operation).Observe(time.Since(start).Seconds())

	var status string
	switch {
	case result.OK:
		status = metrics.StatusSuccess
	case result.Reason == ReasonAddressNotFound:
		status = metrics.StatusNotFound
	default:
		status = metrics.StatusFailure
		in.metrics.APIErrors.WithLabelValues(in.provider, operation).Inc()
	}
	in.metrics.Lookups.WithLabelValues(in.provider, operation, status).Inc()
}
