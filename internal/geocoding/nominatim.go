package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/cabfare/internal/models"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim instance.
const NominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimProvider implements the Geocoder interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use),
// so callers should wrap it with NewRateLimited.
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL of the Nominatim instance, without endpoint path
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// NominatimConfig holds the settings of a Nominatim provider.
type NominatimConfig struct {
	BaseURL   string        // Base URL, defaults to NominatimBaseURL
	UserAgent string        // User-Agent header value, defaults to DefaultUserAgent
	Timeout   time.Duration // HTTP client timeout, defaults to DefaultTimeout
}

// nominatimPlace is a single place as returned by /reverse and /search.
type nominatimPlace struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
	ErrNominatimProviderError = errors.New("nominatim API returned an error")
)

// NewNominatimProvider creates a new Nominatim geocoding provider with its own HTTP client.
func NewNominatimProvider(cfg NominatimConfig, log *slog.Logger) *NominatimProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, cfg, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, cfg NominatimConfig, log *slog.Logger) *NominatimProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &NominatimProvider{
		client:    client,
		baseURL:   baseURL,
		log:       log,
		userAgent: userAgent,
	}
}

// Reverse looks up the address at coord, including its component breakdown.
func (np *NominatimProvider) Reverse(ctx context.Context, coord models.Coordinate) models.LookupResult {
	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim", "lat", coord.Latitude, "lon", coord.Longitude)

	place, err := np.reverse(ctx, coord)
	if err != nil {
		np.log.ErrorContext(ctx, "Reverse geocoding error",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return models.LookupFailure(ReasonReverseFailed)
	}

	return models.LookupSuccess(place.DisplayName, place.Address)
}

// Forward resolves a free-text address to coordinates. Only the provider's
// first match is used.
func (np *NominatimProvider) Forward(ctx context.Context, address string) models.ForwardResult {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	place, coord, err := np.search(ctx, address)
	switch {
	case errors.Is(err, ErrNominatimEmptyResponse):
		np.log.InfoContext(ctx, "Address not found", "address", address)
		return forwardFailure(ReasonAddressNotFound)
	case err != nil:
		np.log.ErrorContext(ctx, "Geocoding error", "address", address, "error", err)
		return forwardFailure(ReasonForwardFailed)
	}

	return models.ForwardResult{
		Coordinate: coord,
		Lookup:     models.LookupSuccess(place.DisplayName, place.Address),
	}
}

func (np *NominatimProvider) reverse(ctx context.Context, coord models.Coordinate) (*nominatimPlace, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("addressdetails", "1")

	body, err := np.get(ctx, "reverse", query)
	if err != nil {
		return nil, err
	}

	var place nominatimPlace
	if err = json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	// Nominatim answers 200 with {"error": "..."} when nothing is at the point.
	if place.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNominatimProviderError, place.Error)
	}

	return &place, nil
}

func (np *NominatimProvider) search(
	ctx context.Context,
	address string,
) (*nominatimPlace, models.Coordinate, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("addressdetails", "1")
	query.Set("limit", "1") // Only need the top result

	body, err := np.get(ctx, "search", query)
	if err != nil {
		return nil, models.Coordinate{}, err
	}

	var places []nominatimPlace
	if err = json.Unmarshal(body, &places); err != nil {
		return nil, models.Coordinate{}, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(places) == 0 {
		return nil, models.Coordinate{}, ErrNominatimEmptyResponse
	}

	place := places[0]
	np.log.DebugContext(ctx, "Nominatim found result", "lat", place.Lat, "lon", place.Lon)

	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, models.Coordinate{}, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, place.Lat)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, models.Coordinate{}, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, place.Lon)
	}

	return &place, models.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// get performs a single GET request against the given endpoint and returns the body.
func (np *NominatimProvider) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL, err := url.Parse(np.baseURL + "/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	reqURL.RawQuery = query.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	return body, nil
}
