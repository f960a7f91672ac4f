package providers

import (
	"context"
	"errors"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-report/internal/weather"
)

var errNoPlace = errors.New("no address for coordinate")

// GeocoderPlaceResolver reverse-geocodes coordinates through the Google
// Geocoding API.
type GeocoderPlaceResolver struct{}

var _ weather.PlaceResolver = (*GeocoderPlaceResolver)(nil)

// NewGeocoderPlaceResolver configures the geocoder package with apiKey.
// The key is process-wide; create at most one resolver.
func NewGeocoderPlaceResolver(apiKey string) *GeocoderPlaceResolver {
	geocoder.ApiKey = apiKey
	return &GeocoderPlaceResolver{}
}

func (g *GeocoderPlaceResolver) ResolvePlace(ctx context.Context, coord weather.Coordinate) (string, error) {
	type result struct {
		place string
		err   error
	}

	// The geocoder package has no context support.
	resultChannel := make(chan result, 1)
	go func() {
		addresses, err := geocoder.GeocodingReverse(geocoder.Location{
			Latitude:  coord.Lat,
			Longitude: coord.Lng,
		})
		if err != nil {
			resultChannel <- result{err: err}
			return
		}
		if len(addresses) == 0 {
			resultChannel <- result{err: errNoPlace}
			return
		}
		place := addresses[0].FormattedAddress
		if place == "" {
			place = addresses[0].FormatAddress()
		}
		resultChannel <- result{place: place}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultChannel:
		return res.place, res.err
	}
}
