package values

import (
	"fmt"

	"github.com/oceantrail/divelog-api/internal/domain"
)

// Coordinates is an immutable geographic position.
type Coordinates struct {
	latitude  float64
	longitude float64
}

// NewCoordinates validates latitude in [-90, 90] and longitude in [-180, 180].
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, domain.NewValidationError("latitude", "must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, domain.NewValidationError("longitude", "must be between -180 and 180")
	}
	return Coordinates{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in degrees.
func (c Coordinates) Latitude() float64 { return c.latitude }

// Longitude returns the longitude in degrees.
func (c Coordinates) Longitude() float64 { return c.longitude }

// Equal compares two coordinate pairs by value.
func (c Coordinates) Equal(other Coordinates) bool {
	return c.latitude == other.latitude && c.longitude == other.longitude
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.latitude, c.longitude)
}
