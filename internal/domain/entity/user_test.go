package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

func testProfile(t *testing.T) values.UserProfile {
	t.Helper()
	p, err := values.NewUserProfile("Maya", "Reyes", "", nil)
	require.NoError(t, err)
	return p
}

func TestNewUserNormalizesEmail(t *testing.T) {
	u, err := NewUser("  Maya.Reyes@Example.COM ", "maya_r", testProfile(t))
	require.NoError(t, err)
	assert.Equal(t, "maya.reyes@example.com", u.Email())
	assert.Equal(t, "maya_r", u.Username())
	assert.False(t, u.IsPremium())
	assert.Nil(t, u.PremiumSince())
}

func TestNewUserValidation(t *testing.T) {
	profile := testProfile(t)

	tests := []struct {
		name, email, username string
		field                 string
	}{
		{"empty email", "", "maya_r", "email"},
		{"no at sign", "maya.example.com", "maya_r", "email"},
		{"no dot after at", "maya@examplecom", "maya_r", "email"},
		{"at sign first", "@example.com", "maya_r", "email"},
		{"email too long", strings.Repeat("a", 95) + "@ex.com", "maya_r", "email"},
		{"username too short", "maya@example.com", "ab", "username"},
		{"username too long", "maya@example.com", strings.Repeat("a", 31), "username"},
		{"username bad charset", "maya@example.com", "maya r!", "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.username, profile)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	// boundary: 3-char username with allowed charset
	_, err := NewUser("maya@example.com", "a-1", profile)
	require.NoError(t, err)
}

func TestPremiumToggle(t *testing.T) {
	u, err := NewUser("maya@example.com", "maya_r", testProfile(t))
	require.NoError(t, err)

	require.NoError(t, u.UpgradeToPremium())
	assert.True(t, u.IsPremium())
	require.NotNil(t, u.PremiumSince())

	err = u.UpgradeToPremium()
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))

	require.NoError(t, u.DowngradeFromPremium())
	assert.False(t, u.IsPremium())
	assert.Nil(t, u.PremiumSince())

	err = u.DowngradeFromPremium()
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))
}

func TestUserRecordRoundTrip(t *testing.T) {
	u, err := NewUser("maya@example.com", "maya_r", testProfile(t))
	require.NoError(t, err)
	require.NoError(t, u.UpgradeToPremium())

	restored := RestoreUser(u.Record())
	assert.Equal(t, u.ID(), restored.ID())
	assert.True(t, restored.IsPremium())
	require.NotNil(t, restored.PremiumSince())
	assert.True(t, restored.Profile().Equal(u.Profile()))
}
