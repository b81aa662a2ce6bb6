// Package location — geo_utils contains pure geographic computation helpers.
package location

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusMiles = 3959.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// HaversineMiles returns the great-circle distance in miles between two
// points specified in decimal degrees. NaN or out-of-range inputs are
// rejected rather than propagated into distance math.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) (float64, error) {
	for _, c := range [...][2]float64{{lat1, lng1}, {lat2, lng2}} {
		if err := ValidateCoordinate(c[0], c[1]); err != nil {
			return 0, err
		}
	}

	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c, nil
}

// ValidateCoordinate checks a latitude/longitude pair for NaN and range.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, lng)
	}
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
