package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func TestDepthFromMeters(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		ok     bool
	}{
		{"minimum boundary", 0.1, true},
		{"maximum boundary", 350, true},
		{"zero", 0, false},
		{"negative", -3, false},
		{"above maximum", 350.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DepthFromMeters(tt.meters)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.meters, d.Meters())
			assert.Equal(t, DepthUnitMeters, d.Unit())
		})
	}
}

func TestDepthUnitAwareEquality(t *testing.T) {
	m, err := DepthFromMeters(30.48)
	require.NoError(t, err)
	ft, err := DepthFromFeet(100)
	require.NoError(t, err)

	assert.True(t, m.Equal(ft))
	assert.InDelta(t, 30.48, ft.Meters(), 1e-9)
	assert.Equal(t, 100.0, ft.Value())
}

func TestTemperatureRangeAndConversion(t *testing.T) {
	_, err := TemperatureFromCelsius(-5.1)
	require.Error(t, err)
	_, err = TemperatureFromCelsius(45.1)
	require.Error(t, err)

	c, err := TemperatureFromCelsius(20)
	require.NoError(t, err)
	f, err := TemperatureFromFahrenheit(68)
	require.NoError(t, err)
	assert.True(t, c.Equal(f))

	// out of range after conversion
	_, err = TemperatureFromFahrenheit(150)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestVisibilityRange(t *testing.T) {
	v, err := VisibilityFromMeters(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Meters())

	_, err = VisibilityFromMeters(100)
	require.NoError(t, err)

	_, err = VisibilityFromMeters(-0.1)
	require.Error(t, err)
	_, err = VisibilityFromMeters(100.1)
	require.Error(t, err)
}

func TestCoordinatesValidation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		field    string
	}{
		{"latitude too low", -90.1, 0, "latitude"},
		{"latitude too high", 90.1, 0, "latitude"},
		{"longitude too low", 0, -180.1, "longitude"},
		{"longitude too high", 0, 180.1, "longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoordinates(tt.lat, tt.lon)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	c, err := NewCoordinates(-90, 180)
	require.NoError(t, err)
	assert.Equal(t, -90.0, c.Latitude())
	assert.Equal(t, 180.0, c.Longitude())
}

func TestUserProfile(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	p, err := NewUserProfile("  Maya ", "Reyes", " Wreck diver ", &avatar)
	require.NoError(t, err)
	assert.Equal(t, "Maya", p.FirstName())
	assert.Equal(t, "Reyes", p.LastName())
	assert.Equal(t, "Wreck diver", p.Bio())
	require.NotNil(t, p.AvatarURL())
	assert.Equal(t, avatar, *p.AvatarURL())
	assert.Equal(t, "Maya Reyes", p.FullName())

	_, err = NewUserProfile("", "Reyes", "", nil)
	require.Error(t, err)
	_, err = NewUserProfile("Maya", "  ", "", nil)
	require.Error(t, err)

	same, err := NewUserProfile("Maya", "Reyes", "Wreck diver", &avatar)
	require.NoError(t, err)
	assert.True(t, p.Equal(same))

	without, err := NewUserProfile("Maya", "Reyes", "Wreck diver", nil)
	require.NoError(t, err)
	assert.False(t, p.Equal(without))
}
