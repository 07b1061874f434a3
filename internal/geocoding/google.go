package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/cabfare/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is an alternative Geocoder backend
// mapping Google's address components onto the Nominatim component keys.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrGoogleEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrGoogleEmptyResponse = errors.New("get empty response from Google Maps API")

// googleComponentKeys maps Google address component types to AddressComponents keys.
var googleComponentKeys = map[string]string{
	"administrative_area_level_1": models.ComponentState,
	"administrative_area_level_2": models.ComponentCounty,
	"administrative_area_level_3": models.ComponentStateDistrict,
	"locality":                    models.ComponentCity,
	"postal_code":                 models.ComponentPostcode,
	"country":                     models.ComponentCountry,
}

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Reverse looks up the address at coord using the Google Maps reverse geocoding API.
func (gp *GoogleProvider) Reverse(ctx context.Context, coord models.Coordinate) models.LookupResult {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "lat", coord.Latitude, "lon", coord.Longitude)

	req := maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude}}
	result, err := first(gp.client.ReverseGeocode(ctx, &req))
	if err != nil {
		gp.log.ErrorContext(ctx, "Reverse geocoding error",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return models.LookupFailure(ReasonReverseFailed)
	}

	return models.LookupSuccess(result.FormattedAddress, googleComponents(result.AddressComponents))
}

// Forward resolves address using the Google Maps geocoding API, keeping the first match.
func (gp *GoogleProvider) Forward(ctx context.Context, address string) models.ForwardResult {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	result, err := first(gp.client.Geocode(ctx, &req))
	switch {
	case errors.Is(err, ErrGoogleEmptyResponse):
		gp.log.InfoContext(ctx, "Address not found", "address", address)
		return forwardFailure(ReasonAddressNotFound)
	case err != nil:
		gp.log.ErrorContext(ctx, "Geocoding error", "address", address, "error", err)
		return forwardFailure(ReasonForwardFailed)
	}

	location := result.Geometry.Location

	return models.ForwardResult{
		Coordinate: models.Coordinate{Latitude: location.Lat, Longitude: location.Lng},
		Lookup:     models.LookupSuccess(result.FormattedAddress, googleComponents(result.AddressComponents)),
	}
}

func first(results []maps.GeocodingResult, err error) (*maps.GeocodingResult, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrGoogleEmptyResponse
	}

	return &results[0], nil
}

func googleComponents(components []maps.AddressComponent) models.AddressComponents {
	out := models.AddressComponents{}
	for _, component := range components {
		for _, typ := range component.Types {
			if key, ok := googleComponentKeys[typ]; ok {
				out[key] = component.LongName
			}
		}
	}

	return out
}

// userAgentTransport stamps every outgoing request with a fixed User-Agent.
type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)

	return t.next.RoundTrip(req)
}
