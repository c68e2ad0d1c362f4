package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

func deliverTestNotification(t *testing.T, svc *NotificationService, userID string) *entity.Notification {
	t.Helper()
	n, err := svc.Deliver(context.Background(), entity.NewNotificationInput{
		UserID:   userID,
		Type:     entity.NotificationNewMessage,
		Title:    "New message",
		Message:  "diverB sent you a message",
		Priority: entity.PriorityNormal,
	})
	require.NoError(t, err)
	return n
}

func TestDeliverAndCount(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	deliverTestNotification(t, svc, "user-1")
	deliverTestNotification(t, svc, "user-1")
	deliverTestNotification(t, svc, "user-2")

	count, err := svc.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMarkReadEnforcesOwnership(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	n := deliverTestNotification(t, svc, "user-1")

	_, err := svc.MarkRead(context.Background(), n.ID(), "user-2")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	n, err = svc.MarkRead(context.Background(), n.ID(), "user-1")
	require.NoError(t, err)
	assert.True(t, n.IsRead())
	assert.NotNil(t, n.ReadAt())
}

func TestMarkUnreadRoundTrip(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	n := deliverTestNotification(t, svc, "user-1")

	n, err := svc.MarkRead(context.Background(), n.ID(), "user-1")
	require.NoError(t, err)
	n, err = svc.MarkUnread(context.Background(), n.ID(), "user-1")
	require.NoError(t, err)
	assert.False(t, n.IsRead())
	assert.Nil(t, n.ReadAt())
}

func TestMarkAllRead(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	deliverTestNotification(t, svc, "user-1")
	deliverTestNotification(t, svc, "user-1")
	deliverTestNotification(t, svc, "user-2")

	marked, err := svc.MarkAllRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	count, err := svc.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// the other user's notifications are untouched
	count, err = svc.CountUnread(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListByUserUnreadFilter(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	a := deliverTestNotification(t, svc, "user-1")
	deliverTestNotification(t, svc, "user-1")

	_, err := svc.MarkRead(context.Background(), a.ID(), "user-1")
	require.NoError(t, err)

	unread, err := svc.ListByUser(context.Background(), "user-1", true, 0, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	all, err := svc.ListByUser(context.Background(), "user-1", false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
