package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func validAchievementInput() NewAchievementInput {
	return NewAchievementInput{
		Title:       "Deep Explorer",
		Description: "Log a dive deeper than 30 meters.",
		Type:        AchievementMilestone,
		Category:    CategoryDiving,
		Points:      100,
	}
}

func TestNewAchievementBoundaries(t *testing.T) {
	// minimum-valid boundary values never raise
	in := validAchievementInput()
	in.Title = "Abc"
	in.Description = strings.Repeat("d", 10)
	in.Points = 0
	one := 1
	in.Type = AchievementProgressive
	in.RequiredValue = &one
	_, err := NewAchievement(in)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*NewAchievementInput)
		field  string
	}{
		{"title too short", func(in *NewAchievementInput) { in.Title = "Ab" }, "title"},
		{"title too long", func(in *NewAchievementInput) { in.Title = strings.Repeat("t", 101) }, "title"},
		{"description too short", func(in *NewAchievementInput) { in.Description = strings.Repeat("d", 9) }, "description"},
		{"description too long", func(in *NewAchievementInput) { in.Description = strings.Repeat("d", 501) }, "description"},
		{"missing type", func(in *NewAchievementInput) { in.Type = "" }, "type"},
		{"missing category", func(in *NewAchievementInput) { in.Category = "" }, "category"},
		{"negative points", func(in *NewAchievementInput) { in.Points = -1 }, "points"},
		{"points too high", func(in *NewAchievementInput) { in.Points = 10001 }, "points"},
		{"icon url too long", func(in *NewAchievementInput) { u := strings.Repeat("u", 501); in.IconURL = &u }, "iconUrl"},
		{"required value zero", func(in *NewAchievementInput) { z := 0; in.RequiredValue = &z }, "requiredValue"},
		{"required value too high", func(in *NewAchievementInput) { v := 1000001; in.RequiredValue = &v }, "requiredValue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAchievementInput()
			tt.mutate(&in)
			_, err := NewAchievement(in)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestToggleSecretDoubleTogglesBack(t *testing.T) {
	a, err := NewAchievement(validAchievementInput())
	require.NoError(t, err)
	require.False(t, a.IsSecret())

	a.ToggleSecret()
	assert.True(t, a.IsSecret())
	a.ToggleSecret()
	assert.False(t, a.IsSecret())
}

func TestUserAchievementProgress(t *testing.T) {
	ten := 10
	ua, err := NewUserAchievement("user-1", "ach-1", &ten)
	require.NoError(t, err)
	require.NotNil(t, ua.Progress())
	assert.Equal(t, 10, *ua.Progress())

	// no monotonicity constraint: progress may go down
	five := 5
	require.NoError(t, ua.UpdateProgress(&five))
	assert.Equal(t, 5, *ua.Progress())

	require.NoError(t, ua.UpdateProgress(nil))
	assert.Nil(t, ua.Progress())

	negative := -1
	require.Error(t, ua.UpdateProgress(&negative))
	tooHigh := 1000001
	require.Error(t, ua.UpdateProgress(&tooHigh))

	_, err = NewUserAchievement("", "ach-1", nil)
	require.Error(t, err)
	_, err = NewUserAchievement("user-1", "", nil)
	require.Error(t, err)
}

func TestAchievementRecordRoundTrip(t *testing.T) {
	a, err := NewAchievement(validAchievementInput())
	require.NoError(t, err)
	a.ToggleSecret()

	restored := RestoreAchievement(a.Record())
	assert.Equal(t, a.ID(), restored.ID())
	assert.True(t, restored.IsSecret())
	assert.Equal(t, a.Points(), restored.Points())
}
