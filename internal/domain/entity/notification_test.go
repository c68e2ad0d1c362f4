package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func validNotificationInput() NewNotificationInput {
	return NewNotificationInput{
		UserID:  "user-1",
		Type:    NotificationEventCancelled,
		Title:   "Event cancelled",
		Message: "Night dive at the pier was cancelled by the organizer.",
	}
}

func TestNewNotificationDefaults(t *testing.T) {
	n, err := NewNotification(validNotificationInput())
	require.NoError(t, err)
	assert.Equal(t, PriorityNormal, n.Priority())
	assert.False(t, n.IsRead())
	assert.Nil(t, n.ReadAt())
	assert.Nil(t, n.ReferenceID())
}

func TestNewNotificationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewNotificationInput)
	}{
		{"missing user", func(in *NewNotificationInput) { in.UserID = "" }},
		{"missing type", func(in *NewNotificationInput) { in.Type = "" }},
		{"missing title", func(in *NewNotificationInput) { in.Title = "  " }},
		{"title too long", func(in *NewNotificationInput) { in.Title = strings.Repeat("t", 201) }},
		{"missing message", func(in *NewNotificationInput) { in.Message = "" }},
		{"message too long", func(in *NewNotificationInput) { in.Message = strings.Repeat("m", 1001) }},
		{"bad priority", func(in *NewNotificationInput) { in.Priority = "urgent" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNotificationInput()
			tt.mutate(&in)
			_, err := NewNotification(in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestReadUnreadToggle(t *testing.T) {
	n, err := NewNotification(validNotificationInput())
	require.NoError(t, err)

	require.NoError(t, n.MarkAsRead())
	assert.True(t, n.IsRead())
	require.NotNil(t, n.ReadAt())

	err = n.MarkAsRead()
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))

	require.NoError(t, n.MarkAsUnread())
	assert.False(t, n.IsRead())
	assert.Nil(t, n.ReadAt())

	err = n.MarkAsUnread()
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))
}

func TestContentFreezesAfterRead(t *testing.T) {
	n, err := NewNotification(validNotificationInput())
	require.NoError(t, err)

	require.NoError(t, n.UpdatePriority(PriorityHigh))
	require.NoError(t, n.UpdateContent("Updated", "The meeting point moved to the south entry."))

	require.NoError(t, n.MarkAsRead())

	err = n.UpdatePriority(PriorityLow)
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))

	err = n.UpdateContent("Again", "Another change after read.")
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))
}

func TestNotificationRecordRoundTrip(t *testing.T) {
	in := validNotificationInput()
	ref := "event-42"
	in.ReferenceID = &ref
	n, err := NewNotification(in)
	require.NoError(t, err)
	require.NoError(t, n.MarkAsRead())

	restored := RestoreNotification(n.Record())
	assert.Equal(t, n.ID(), restored.ID())
	assert.True(t, restored.IsRead())
	require.NotNil(t, restored.ReferenceID())
	assert.Equal(t, "event-42", *restored.ReferenceID())
}
