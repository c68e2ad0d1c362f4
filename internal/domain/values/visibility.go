package values

import (
	"fmt"
	"math"

	"github.com/oceantrail/divelog-api/internal/domain"
)

const maxVisibilityM = 100.0

// Visibility is an immutable, range-validated underwater visibility distance.
type Visibility struct {
	meters float64
}

// VisibilityFromMeters builds a Visibility. Valid range is [0, 100].
func VisibilityFromMeters(m float64) (Visibility, error) {
	if m < 0 || m > maxVisibilityM {
		return Visibility{}, domain.NewValidationError("visibility", fmt.Sprintf("must be between 0 and %.0f meters", maxVisibilityM))
	}
	return Visibility{meters: m}, nil
}

// Meters returns the visibility distance in meters.
func (v Visibility) Meters() float64 { return v.meters }

// Equal compares two visibilities in meters.
func (v Visibility) Equal(other Visibility) bool {
	return math.Abs(v.meters-other.meters) < 1e-9
}

func (v Visibility) String() string {
	return fmt.Sprintf("%.1fm", v.meters)
}
