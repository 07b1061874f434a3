package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/cabfare/internal/geocoding"
	"github.com/UnknownOlympus/cabfare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

type mockGoogleClient struct {
	mock.Mock
}

func (m *mockGoogleClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	results, _ := args.Get(0).([]maps.GeocodingResult)
	return results, args.Error(1)
}

func (m *mockGoogleClient) ReverseGeocode(
	ctx context.Context,
	r *maps.GeocodingRequest,
) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	results, _ := args.Get(0).([]maps.GeocodingResult)
	return results, args.Error(1)
}

func TestGoogleProvider_Forward(t *testing.T) {
	mockClient := &mockGoogleClient{}
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		result := provider.Forward(ctx, address)

		assert.False(t, result.Lookup.OK)
		assert.Equal(t, geocoding.ReasonForwardFailed, result.Lookup.Reason)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		address := "nowhere at all"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		result := provider.Forward(ctx, address)

		assert.False(t, result.Lookup.OK)
		assert.Equal(t, geocoding.ReasonAddressNotFound, result.Lookup.Reason)
		mockClient.AssertExpectations(t)
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		address := "Patna Junction"
		req := &maps.GeocodingRequest{Address: address}
		mockReponse := []maps.GeocodingResult{
			{
				FormattedAddress: "Patna Junction, Patna, Bihar 800001, India",
				Geometry:         maps.AddressGeometry{Location: maps.LatLng{Lat: 25.6026, Lng: 85.1376}},
				AddressComponents: []maps.AddressComponent{
					{LongName: "Patna", Types: []string{"administrative_area_level_2", "political"}},
					{LongName: "Bihar", Types: []string{"administrative_area_level_1", "political"}},
				},
			},
		}

		mockClient.On("Geocode", ctx, req).Return(mockReponse, nil).Once()

		result := provider.Forward(ctx, address)

		require.True(t, result.Lookup.OK)
		require.InEpsilon(t, 25.6026, result.Coordinate.Latitude, 0.0001)
		require.InEpsilon(t, 85.1376, result.Coordinate.Longitude, 0.0001)
		assert.Equal(t, "Patna", result.Lookup.Components.County())
		assert.Equal(t, "Bihar", result.Lookup.Components.State())
		mockClient.AssertExpectations(t)
	})
}

func TestGoogleProvider_Reverse(t *testing.T) {
	mockClient := &mockGoogleClient{}
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()
	coord := models.Coordinate{Latitude: 25.8629, Longitude: 85.781}
	req := &maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude}}

	t.Run("api returns error", func(t *testing.T) {
		mockClient.On("ReverseGeocode", ctx, req).Return(nil, assert.AnError).Once()

		result := provider.Reverse(ctx, coord)

		assert.False(t, result.OK)
		assert.Equal(t, geocoding.ReasonReverseFailed, result.Reason)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		mockClient.On("ReverseGeocode", ctx, req).Return([]maps.GeocodingResult{}, nil).Once()

		result := provider.Reverse(ctx, coord)

		assert.False(t, result.OK)
		assert.Equal(t, geocoding.ReasonReverseFailed, result.Reason)
		mockClient.AssertExpectations(t)
	})

	t.Run("components mapped to nominatim keys", func(t *testing.T) {
		mockReponse := []maps.GeocodingResult{
			{
				FormattedAddress: "Station Rd, Samastipur, Bihar 848101, India",
				AddressComponents: []maps.AddressComponent{
					{LongName: "Samastipur", Types: []string{"locality", "political"}},
					{LongName: "Samastipur", Types: []string{"administrative_area_level_3", "political"}},
					{LongName: "Darbhanga", Types: []string{"administrative_area_level_2", "political"}},
					{LongName: "Bihar", Types: []string{"administrative_area_level_1", "political"}},
					{LongName: "India", Types: []string{"country", "political"}},
					{LongName: "848101", Types: []string{"postal_code"}},
					{LongName: "Station Road", Types: []string{"route"}},
				},
			},
		}
		mockClient.On("ReverseGeocode", ctx, req).Return(mockReponse, nil).Once()

		result := provider.Reverse(ctx, coord)

		require.True(t, result.OK)
		assert.Equal(t, "Station Rd, Samastipur, Bihar 848101, India", result.DisplayAddress)
		assert.Equal(t, models.AddressComponents{
			"city":           "Samastipur",
			"state_district": "Samastipur",
			"county":         "Darbhanga",
			"state":          "Bihar",
			"country":        "India",
			"postcode":       "848101",
		}, result.Components)
		mockClient.AssertExpectations(t)
	})
}
