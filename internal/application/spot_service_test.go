package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func newSpotFixture() *SpotService {
	return NewSpotService(newFakeSpotRepo(), nil, "", nil, nil, "")
}

func validSpot() CreateSpotInput {
	depth := 30.0
	return CreateSpotInput{
		Name:           "Crystal Bay",
		Description:    "Mola mola cleaning station.",
		Latitude:       -8.7165,
		Longitude:      115.4585,
		MaxDepthMeters: &depth,
	}
}

func TestCreateAndListSpots(t *testing.T) {
	svc := newSpotFixture()

	spot, err := svc.Create(context.Background(), "user-1", validSpot())
	require.NoError(t, err)
	assert.Equal(t, "Crystal Bay", spot.Name())
	require.NotNil(t, spot.MaximumDepth())
	assert.InDelta(t, 30, spot.MaximumDepth().Meters(), 0.001)

	list, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateSpotRejectsBadCoordinates(t *testing.T) {
	svc := newSpotFixture()
	in := validSpot()
	in.Latitude = 91

	_, err := svc.Create(context.Background(), "user-1", in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRateReplacesEarlierScore(t *testing.T) {
	svc := newSpotFixture()
	spot, err := svc.Create(context.Background(), "user-1", validSpot())
	require.NoError(t, err)

	spot, err = svc.Rate(context.Background(), spot.ID(), "user-2", 5, nil)
	require.NoError(t, err)
	spot, err = svc.Rate(context.Background(), spot.ID(), "user-3", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, spot.TotalRatings())
	assert.InDelta(t, 4, spot.AverageRating(), 0.001)

	// a second rating by the same user replaces the first
	spot, err = svc.Rate(context.Background(), spot.ID(), "user-2", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, spot.TotalRatings())
	assert.InDelta(t, 2, spot.AverageRating(), 0.001)
}

func TestRemoveRating(t *testing.T) {
	svc := newSpotFixture()
	spot, err := svc.Create(context.Background(), "user-1", validSpot())
	require.NoError(t, err)

	spot, err = svc.Rate(context.Background(), spot.ID(), "user-2", 4, nil)
	require.NoError(t, err)

	spot, err = svc.RemoveRating(context.Background(), spot.ID(), "user-2")
	require.NoError(t, err)
	assert.Zero(t, spot.TotalRatings())

	_, err = svc.RemoveRating(context.Background(), spot.ID(), "user-2")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateSpotConditions(t *testing.T) {
	svc := newSpotFixture()
	spot, err := svc.Create(context.Background(), "user-1", validSpot())
	require.NoError(t, err)

	temp := 26.0
	vis := 15.0
	spot, err = svc.UpdateConditions(context.Background(), spot.ID(), SpotConditionsInput{
		WaterTemperatureC: &temp,
		VisibilityMeters:  &vis,
	})
	require.NoError(t, err)
	require.NotNil(t, spot.CurrentTemperature())
	require.NotNil(t, spot.CurrentVisibility())
	assert.InDelta(t, 26, spot.CurrentTemperature().Celsius(), 0.001)
}

func TestUpdateInformation(t *testing.T) {
	svc := newSpotFixture()
	spot, err := svc.Create(context.Background(), "user-1", validSpot())
	require.NoError(t, err)

	in := validSpot()
	in.Name = "Crystal Bay North"
	spot, err = svc.UpdateInformation(context.Background(), spot.ID(), in)
	require.NoError(t, err)
	assert.Equal(t, "Crystal Bay North", spot.Name())
}
