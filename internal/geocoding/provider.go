package geocoding

import (
	"context"
	"net/http"
	"time"

	"github.com/UnknownOlympus/cabfare/internal/models"
)

// Failure reasons reported to callers. Provider details stay in the logs.
const (
	ReasonReverseFailed   = "Failed to reverse geocode location"
	ReasonForwardFailed   = "Failed to geocode address"
	ReasonAddressNotFound = "Address not found"
)

const (
	// DefaultUserAgent identifies this client to the geocoding provider.
	DefaultUserAgent = "SaminToursTravels/1.0"
	// DefaultTimeout bounds every outbound geocoding request.
	DefaultTimeout = 10 * time.Second
)

// Geocoder resolves coordinates to addresses and back.
// Implementations never return errors: every failure is folded into the
// returned LookupResult so callers can surface it as a normal outcome.
type Geocoder interface {
	Reverse(ctx context.Context, coord models.Coordinate) models.LookupResult
	Forward(ctx context.Context, address string) models.ForwardResult
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func forwardFailure(reason string) models.ForwardResult {
	return models.ForwardResult{Lookup: models.LookupFailure(reason)}
}
