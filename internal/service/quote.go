package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/cabfare/internal/distance"
	"github.com/UnknownOlympus/cabfare/internal/fare"
	"github.com/UnknownOlympus/cabfare/internal/geocoding"
	"github.com/UnknownOlympus/cabfare/internal/metrics"
	"github.com/UnknownOlympus/cabfare/internal/models"
	"github.com/google/uuid"
)

// ErrInvalidRequest is returned for quote requests missing a required location.
var ErrInvalidRequest = errors.New("invalid quote request")

// PickupValidator decides whether a pickup point is inside the served region.
type PickupValidator interface {
	Validate(ctx context.Context, coord models.Coordinate) models.GeofenceDecision
}

// QuoteService prices trips: it validates the pickup against the geofence,
// resolves addresses through the geocoder, estimates the road distance and
// applies the car's tariff.
type QuoteService struct {
	log        *slog.Logger       // Logger for logging service activities
	validator  PickupValidator    // Geofence check for pickup points
	geocoder   geocoding.Geocoder // Rate limited geocoder for address lookups
	metrics    *metrics.Metrics   // Metrics for tracking service performance
	numWorkers int                // Number of concurrent workers used by Run
}

// NewQuoteService creates a new instance of QuoteService.
// The geocoder must share its rate limiter with the one behind validator.
func NewQuoteService(
	log *slog.Logger,
	validator PickupValidator,
	geocoder geocoding.Geocoder,
	metrics *metrics.Metrics,
	numWorkers int,
) *QuoteService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &QuoteService{
		log:        log,
		validator:  validator,
		geocoder:   geocoder,
		metrics:    metrics,
		numWorkers: numWorkers,
	}
}

// Quote prices a single trip. Business outcomes (pickup outside the region,
// address not found, provider unavailable) come back as an invalid result
// with a reason; a request without pickup or destination yields Error.
func (qs *QuoteService) Quote(ctx context.Context, req models.QuoteRequest) models.QuoteResult {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	result := models.QuoteResult{ID: req.ID}

	if err := checkRequest(req); err != nil {
		result.Error = err.Error()
		qs.metrics.QuotesProcessed.WithLabelValues(metrics.StatusInvalid).Inc()
		return result
	}

	pickup, _, reason, ok := qs.resolve(ctx, req.Pickup, req.PickupAddress)
	if !ok {
		result.Reason = reason
		return qs.reject(ctx, result)
	}

	decision := qs.validator.Validate(ctx, pickup)
	if !decision.IsValid {
		result.Reason = decision.Reason
		return qs.reject(ctx, result)
	}
	result.PickupAddress = decision.FormattedAddress

	destination, destinationAddress, reason, ok := qs.resolve(ctx, req.Destination, req.DestinationAddress)
	if !ok {
		result.Reason = reason
		return qs.reject(ctx, result)
	}
	result.DestinationAddress = destinationAddress

	km := distance.EstimateRoadDistanceKm(pickup, destination)
	breakdown := fare.Compute(km, req.Pricing)

	result.Valid = true
	result.DistanceKm = km
	result.Fare = &breakdown

	qs.log.DebugContext(ctx, "Quote computed", "id", result.ID, "distance_km", km, "total_fare", breakdown.TotalFare)
	qs.metrics.QuotesProcessed.WithLabelValues(metrics.StatusSuccess).Inc()

	return result
}

// resolve returns coord as is when given, otherwise forward geocodes address.
// It also returns the address to display and, on failure, the lookup reason.
func (qs *QuoteService) resolve(
	ctx context.Context,
	coord *models.Coordinate,
	address string,
) (models.Coordinate, string, string, bool) {
	if coord != nil {
		return *coord, address, "", true
	}

	found := qs.geocoder.Forward(ctx, address)
	if !found.Lookup.OK {
		return models.Coordinate{}, "", found.Lookup.Reason, false
	}

	return found.Coordinate, found.Lookup.DisplayAddress, "", true
}

func (qs *QuoteService) reject(ctx context.Context, result models.QuoteResult) models.QuoteResult {
	qs.log.InfoContext(ctx, "Quote rejected", "id", result.ID, "reason", result.Reason)
	qs.metrics.QuotesProcessed.WithLabelValues(metrics.StatusRejected).Inc()

	return result
}

func checkRequest(req models.QuoteRequest) error {
	if req.Pickup == nil && req.PickupAddress == "" {
		return fmt.Errorf("%w: pickup coordinates or address are required", ErrInvalidRequest)
	}
	if req.Destination == nil && req.DestinationAddress == "" {
		return fmt.Errorf("%w: destination coordinates or address are required", ErrInvalidRequest)
	}

	return nil
}
