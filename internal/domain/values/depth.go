package values

import (
	"fmt"
	"math"

	"github.com/oceantrail/divelog-api/internal/domain"
)

// DepthUnit identifies the unit a Depth was recorded in.
type DepthUnit string

const (
	DepthUnitMeters DepthUnit = "m"
	DepthUnitFeet   DepthUnit = "ft"
)

const (
	metersPerFoot = 0.3048
	maxDepthM     = 350.0
)

// Depth is an immutable, range-validated dive depth. Comparison happens in
// meters regardless of the unit it was recorded in.
type Depth struct {
	value float64
	unit  DepthUnit
}

// DepthFromMeters builds a Depth in meters. Valid range is (0, 350].
func DepthFromMeters(m float64) (Depth, error) {
	if m <= 0 || m > maxDepthM {
		return Depth{}, domain.NewValidationError("depth", fmt.Sprintf("must be greater than 0 and at most %.0f meters", maxDepthM))
	}
	return Depth{value: m, unit: DepthUnitMeters}, nil
}

// DepthFromFeet builds a Depth in feet, validated against the same range
// after conversion to meters.
func DepthFromFeet(ft float64) (Depth, error) {
	m := ft * metersPerFoot
	if m <= 0 || m > maxDepthM {
		return Depth{}, domain.NewValidationError("depth", fmt.Sprintf("must be greater than 0 and at most %.0f feet", maxDepthM/metersPerFoot))
	}
	return Depth{value: ft, unit: DepthUnitFeet}, nil
}

// Value returns the depth in its recorded unit.
func (d Depth) Value() float64 { return d.value }

// Unit returns the unit the depth was recorded in.
func (d Depth) Unit() DepthUnit { return d.unit }

// Meters returns the depth converted to the canonical unit.
func (d Depth) Meters() float64 {
	if d.unit == DepthUnitFeet {
		return d.value * metersPerFoot
	}
	return d.value
}

// Equal compares two depths in meters.
func (d Depth) Equal(other Depth) bool {
	return math.Abs(d.Meters()-other.Meters()) < 1e-9
}

func (d Depth) String() string {
	return fmt.Sprintf("%.1f%s", d.value, d.unit)
}
