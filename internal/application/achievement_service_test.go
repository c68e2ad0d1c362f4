package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

func newAchievementFixture(t *testing.T) (*AchievementService, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	users := newFakeUserRepo()
	pub := &fakePublisher{}
	return NewAchievementService(newFakeAchievementRepo(), users, pub, nil), users, pub
}

func seedAchievement(t *testing.T, svc *AchievementService, title string, secret bool) *entity.Achievement {
	t.Helper()
	a, err := svc.CreateAchievement(context.Background(), entity.NewAchievementInput{
		Title:       title,
		Description: "Awarded for " + title + ".",
		Type:        entity.AchievementMilestone,
		Category:    entity.CategoryDiving,
		Points:      10,
		IsSecret:    secret,
	})
	require.NoError(t, err)
	return a
}

func TestListHidesSecrets(t *testing.T) {
	svc, _, _ := newAchievementFixture(t)
	seedAchievement(t, svc, "First Splash", false)
	seedAchievement(t, svc, "Night Owl", true)

	visible, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "First Splash", visible[0].Title())

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUnlockNotifiesOnce(t *testing.T) {
	svc, users, pub := newAchievementFixture(t)
	diver := seedUser(t, users, "diver@divelog.dev", "diver")
	a := seedAchievement(t, svc, "First Splash", false)

	ua, err := svc.Unlock(context.Background(), diver.ID(), a.ID(), nil)
	require.NoError(t, err)
	assert.Equal(t, diver.ID(), ua.UserID())

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "achievement_unlocked", pub.jobs[0].Type)
	assert.Contains(t, pub.jobs[0].Message, "First Splash")

	// unlocking again only updates progress, no second notification
	progress := 5
	again, err := svc.Unlock(context.Background(), diver.ID(), a.ID(), &progress)
	require.NoError(t, err)
	assert.Equal(t, ua.ID(), again.ID())
	require.NotNil(t, again.Progress())
	assert.Equal(t, 5, *again.Progress())
	assert.Len(t, pub.jobs, 1)
}

func TestListForUserPairsCatalog(t *testing.T) {
	svc, users, _ := newAchievementFixture(t)
	diver := seedUser(t, users, "diver@divelog.dev", "diver")
	a := seedAchievement(t, svc, "First Splash", false)
	seedAchievement(t, svc, "Deep Diver", false)

	_, err := svc.Unlock(context.Background(), diver.ID(), a.ID(), nil)
	require.NoError(t, err)

	views, err := svc.ListForUser(context.Background(), diver.ID())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, a.ID(), views[0].Achievement.ID())
	assert.Equal(t, diver.ID(), views[0].Unlock.UserID())
}
