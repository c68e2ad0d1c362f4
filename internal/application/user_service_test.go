package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain/values"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

func newUserFixture() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	svc := NewUserService(repo, jwt, nil, "", nil, nil, nil, "")
	return svc, repo
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:     "ari@divelog.dev",
		Username:  "ariw",
		Password:  "open-water-1988",
		FirstName: "Ari",
		LastName:  "Wijaya",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newUserFixture()

	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ari@divelog.dev", u.Email())
	assert.False(t, u.IsPremium())

	got, err := svc.Authenticate(context.Background(), "ari@divelog.dev", "open-water-1988")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newUserFixture()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "ari@divelog.dev", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.Username = "someoneelse"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrEmailTaken)

	dup = validRegistration()
	dup.Email = "other@divelog.dev"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newUserFixture()
	in := validRegistration()
	in.Password = "short"
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newUserFixture()
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	got, pair, err := svc.Login(context.Background(), "ari@divelog.dev", "open-water-1988")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID(), claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newUserFixture()
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, pair, err := svc.Login(context.Background(), "ari@divelog.dev", "open-water-1988")
	require.NoError(t, err)

	rotated, userID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, rotated.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newUserFixture()
	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePreservesAvatar(t *testing.T) {
	svc, repo := newUserFixture()
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	avatar := "https://cdn.divelog.dev/avatars/ari.png"
	p := u.Profile()
	withAvatar, err := values.NewUserProfile(p.FirstName(), p.LastName(), p.Bio(), &avatar)
	require.NoError(t, err)
	u.UpdateProfile(withAvatar)
	require.NoError(t, repo.Update(context.Background(), u))

	updated, err := svc.UpdateProfile(context.Background(), u.ID(), UpdateProfileInput{
		FirstName: "Ari",
		LastName:  "Wijaya",
		Bio:       "Tech diver, Bali based.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech diver, Bali based.", updated.Profile().Bio())
	require.NotNil(t, updated.Profile().AvatarURL())
	assert.Equal(t, avatar, *updated.Profile().AvatarURL())
}

func TestPremiumToggle(t *testing.T) {
	svc, _ := newUserFixture()
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	u, err = svc.UpgradeToPremium(context.Background(), u.ID())
	require.NoError(t, err)
	assert.True(t, u.IsPremium())
	assert.NotNil(t, u.PremiumSince())

	u, err = svc.DowngradeFromPremium(context.Background(), u.ID())
	require.NoError(t, err)
	assert.False(t, u.IsPremium())
	assert.Nil(t, u.PremiumSince())
}
