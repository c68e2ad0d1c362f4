package values

import (
	"fmt"
	"math"

	"github.com/oceantrail/divelog-api/internal/domain"
)

// TemperatureUnit identifies the unit a WaterTemperature was recorded in.
type TemperatureUnit string

const (
	TemperatureUnitCelsius    TemperatureUnit = "C"
	TemperatureUnitFahrenheit TemperatureUnit = "F"
)

const (
	minWaterTempC = -5.0
	maxWaterTempC = 45.0
)

// WaterTemperature is an immutable, range-validated water temperature.
// Comparison happens in Celsius regardless of the recorded unit.
type WaterTemperature struct {
	value float64
	unit  TemperatureUnit
}

// TemperatureFromCelsius builds a WaterTemperature in Celsius.
// Valid range is [-5, 45].
func TemperatureFromCelsius(c float64) (WaterTemperature, error) {
	if c < minWaterTempC || c > maxWaterTempC {
		return WaterTemperature{}, domain.NewValidationError("waterTemperature", fmt.Sprintf("must be between %.0f and %.0f degrees Celsius", minWaterTempC, maxWaterTempC))
	}
	return WaterTemperature{value: c, unit: TemperatureUnitCelsius}, nil
}

// TemperatureFromFahrenheit builds a WaterTemperature in Fahrenheit,
// validated against the same range after conversion.
func TemperatureFromFahrenheit(f float64) (WaterTemperature, error) {
	c := (f - 32) * 5 / 9
	if c < minWaterTempC || c > maxWaterTempC {
		return WaterTemperature{}, domain.NewValidationError("waterTemperature", "must be between 23 and 113 degrees Fahrenheit")
	}
	return WaterTemperature{value: f, unit: TemperatureUnitFahrenheit}, nil
}

// Value returns the temperature in its recorded unit.
func (t WaterTemperature) Value() float64 { return t.value }

// Unit returns the unit the temperature was recorded in.
func (t WaterTemperature) Unit() TemperatureUnit { return t.unit }

// Celsius returns the temperature converted to the canonical unit.
func (t WaterTemperature) Celsius() float64 {
	if t.unit == TemperatureUnitFahrenheit {
		return (t.value - 32) * 5 / 9
	}
	return t.value
}

// Equal compares two temperatures in Celsius.
func (t WaterTemperature) Equal(other WaterTemperature) bool {
	return math.Abs(t.Celsius()-other.Celsius()) < 1e-9
}

func (t WaterTemperature) String() string {
	return fmt.Sprintf("%.1f°%s", t.value, t.unit)
}
