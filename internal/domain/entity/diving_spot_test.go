package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

func newTestSpot(t *testing.T) *DivingSpot {
	t.Helper()
	loc, err := values.NewCoordinates(-8.532, 115.512)
	require.NoError(t, err)
	spot, err := NewDivingSpot("Crystal Bay", "Drift dive with mola mola sightings in season.", loc, "user-1", nil)
	require.NoError(t, err)
	return spot
}

func TestNewDivingSpotBoundaries(t *testing.T) {
	loc, err := values.NewCoordinates(0, 0)
	require.NoError(t, err)

	// minimum boundary values construct fine
	_, err = NewDivingSpot("Abc", strings.Repeat("d", 10), loc, "user-1", nil)
	require.NoError(t, err)

	tests := []struct {
		name, spotName, description string
	}{
		{"name too short", "Ab", strings.Repeat("d", 10)},
		{"name too long", strings.Repeat("n", 101), strings.Repeat("d", 10)},
		{"description too short", "Abc", strings.Repeat("d", 9)},
		{"description too long", "Abc", strings.Repeat("d", 2001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDivingSpot(tt.spotName, tt.description, loc, "user-1", nil)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	_, err = NewDivingSpot("Abc", strings.Repeat("d", 10), loc, "", nil)
	require.Error(t, err)
}

func TestRateTwiceUpdatesInPlace(t *testing.T) {
	spot := newTestSpot(t)

	require.NoError(t, spot.Rate("user-2", 3, nil))
	first, ok := spot.RatingBy("user-2")
	require.True(t, ok)

	comment := "even better second time"
	require.NoError(t, spot.Rate("user-2", 5, &comment))

	assert.Equal(t, 1, spot.TotalRatings())
	assert.Equal(t, 5.0, spot.AverageRating())

	second, ok := spot.RatingBy("user-2")
	require.True(t, ok)
	assert.Equal(t, first.ID(), second.ID(), "identity preserved on re-rate")
	assert.Equal(t, first.CreatedAt(), second.CreatedAt())
	assert.Equal(t, 5, second.Score())
	require.NotNil(t, second.Comment())
	assert.Equal(t, comment, *second.Comment())
}

func TestAverageRatingRecomputed(t *testing.T) {
	spot := newTestSpot(t)
	assert.Equal(t, 0.0, spot.AverageRating())

	require.NoError(t, spot.Rate("user-2", 4, nil))
	require.NoError(t, spot.Rate("user-3", 2, nil))
	assert.Equal(t, 3.0, spot.AverageRating())
	assert.Equal(t, 2, spot.TotalRatings())

	require.NoError(t, spot.RemoveRating("user-3"))
	assert.Equal(t, 4.0, spot.AverageRating())
	assert.Equal(t, 1, spot.TotalRatings())

	err := spot.RemoveRating("user-3")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestRateValidation(t *testing.T) {
	spot := newTestSpot(t)

	require.Error(t, spot.Rate("user-2", 0, nil))
	require.Error(t, spot.Rate("user-2", 6, nil))
	require.NoError(t, spot.Rate("user-2", 1, nil))
	require.NoError(t, spot.Rate("user-3", 5, nil))
}

func TestPhotoLifecycle(t *testing.T) {
	spot := newTestSpot(t)

	caption := "entry point at low tide"
	photo, err := spot.AddPhoto("https://cdn.example.com/p1.jpg", &caption, "user-2")
	require.NoError(t, err)
	assert.NotEmpty(t, photo.ID())
	assert.Len(t, spot.Photos(), 1)

	require.NoError(t, spot.RemovePhoto(photo.ID()))
	assert.Empty(t, spot.Photos())

	err = spot.RemovePhoto(photo.ID())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = spot.AddPhoto("", nil, "user-2")
	require.Error(t, err)
	_, err = spot.AddPhoto(strings.Repeat("u", 501), nil, "user-2")
	require.Error(t, err)
	tooLong := strings.Repeat("c", 201)
	_, err = spot.AddPhoto("https://cdn.example.com/p2.jpg", &tooLong, "user-2")
	require.Error(t, err)
}

func TestPhotosViewIsACopy(t *testing.T) {
	spot := newTestSpot(t)
	_, err := spot.AddPhoto("https://cdn.example.com/p1.jpg", nil, "user-2")
	require.NoError(t, err)

	view := spot.Photos()
	view[0] = Photo{}
	assert.Equal(t, "https://cdn.example.com/p1.jpg", spot.Photos()[0].URL())
}

func TestDivingSpotRecordRoundTrip(t *testing.T) {
	spot := newTestSpot(t)
	require.NoError(t, spot.Rate("user-2", 4, nil))
	_, err := spot.AddPhoto("https://cdn.example.com/p1.jpg", nil, "user-2")
	require.NoError(t, err)

	restored := RestoreDivingSpot(spot.Record())
	assert.Equal(t, spot.ID(), restored.ID())
	assert.Equal(t, 1, restored.TotalRatings())
	assert.Equal(t, 4.0, restored.AverageRating())
	assert.Len(t, restored.Photos(), 1)
}
