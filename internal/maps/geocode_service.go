package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"crewmatch/internal/types"
)

// GeocodeService resolves event addresses through the Google Geocoding API.
// It satisfies the matching engine's Geocoder interface.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Geocode resolves a street address to coordinates. ok=false means the API
// answered but found nothing; the caller decides how hard that failure is.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (types.Point, bool, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, false, nil
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
