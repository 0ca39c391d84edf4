package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGeocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, "in", slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		place := "some invalid place"
		req := &maps.GeocodingRequest{Address: place, Region: "in"}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Geocode(ctx, place)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		place := "some invalid place"
		req := &maps.GeocodingRequest{Address: place, Region: "in"}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, place)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		place := "Bhuj, Gujarat"
		req := &maps.GeocodingRequest{Address: place, Region: "in"}
		mockReponse := []maps.GeocodingResult{
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 23.24, Lng: 69.66}}},
		}

		mockClient.On("Geocode", ctx, req).Return(mockReponse, nil).Once()

		coords, err := provider.Geocode(ctx, place)

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 23.24, coords.Latitude, 0.01)
		require.InEpsilon(t, 69.66, coords.Longitude, 0.01)
		mockClient.AssertExpectations(t)
	})
}
