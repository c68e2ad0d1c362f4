package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func TestNewPrivateConversation(t *testing.T) {
	c, err := NewPrivateConversation("user-1", "user-2")
	require.NoError(t, err)
	assert.False(t, c.IsGroup())
	assert.Nil(t, c.Title())
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, c.ParticipantIDs())
	assert.Nil(t, c.LastMessageAt())

	_, err = NewPrivateConversation("user-1", "user-1")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = NewPrivateConversation("user-1", " ")
	require.Error(t, err)
}

func TestNewGroupConversation(t *testing.T) {
	c, err := NewGroupConversation("Liveaboard crew", []string{"user-1", "user-2", "user-3"})
	require.NoError(t, err)
	assert.True(t, c.IsGroup())
	require.NotNil(t, c.Title())
	assert.Equal(t, "Liveaboard crew", *c.Title())

	// duplicates collapse; one participant is not enough
	_, err = NewGroupConversation("Crew", []string{"user-1", "user-1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = NewGroupConversation("", []string{"user-1", "user-2"})
	require.Error(t, err)
	_, err = NewGroupConversation(strings.Repeat("t", 101), []string{"user-1", "user-2"})
	require.Error(t, err)
}

func TestGroupMembershipRules(t *testing.T) {
	c, err := NewGroupConversation("Crew", []string{"user-1", "user-2"})
	require.NoError(t, err)

	err = c.AddParticipant("user-2")
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))

	require.NoError(t, c.AddParticipant("user-3"))
	require.NoError(t, c.RemoveParticipant("user-3"))

	// cannot shrink below two
	err = c.RemoveParticipant("user-2")
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))

	err = c.RemoveParticipant("user-9")
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))
}

func TestPrivateConversationIsFixed(t *testing.T) {
	c, err := NewPrivateConversation("user-1", "user-2")
	require.NoError(t, err)

	assert.True(t, domain.IsStateConflict(c.AddParticipant("user-3")))
	assert.True(t, domain.IsStateConflict(c.RemoveParticipant("user-2")))
	assert.True(t, domain.IsStateConflict(c.UpdateTitle("Us two")))
}

func TestUpdateGroupTitle(t *testing.T) {
	c, err := NewGroupConversation("Crew", []string{"user-1", "user-2"})
	require.NoError(t, err)

	require.NoError(t, c.UpdateTitle("  Dive crew  "))
	require.NotNil(t, c.Title())
	assert.Equal(t, "Dive crew", *c.Title())

	require.Error(t, c.UpdateTitle("   "))
}

func TestAddMessage(t *testing.T) {
	c, err := NewPrivateConversation("user-1", "user-2")
	require.NoError(t, err)

	m, err := NewMessage(c.ID(), "user-1", "surface interval at 2pm?")
	require.NoError(t, err)
	require.NoError(t, c.AddMessage(m))

	require.NotNil(t, c.LastMessageAt())
	assert.Equal(t, m.SentAt(), *c.LastMessageAt())
	assert.Len(t, c.Messages(), 1)

	// wrong conversation id
	other, err := NewMessage("another-conversation", "user-1", "hi")
	require.NoError(t, err)
	err = c.AddMessage(other)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// sender not a participant
	stranger, err := NewMessage(c.ID(), "user-9", "hi")
	require.NoError(t, err)
	err = c.AddMessage(stranger)
	require.Error(t, err)
	assert.True(t, domain.IsStateConflict(err))
}

func TestMessageSenderAutoRead(t *testing.T) {
	m, err := NewMessage("conv-1", "user-1", "checking in")
	require.NoError(t, err)

	assert.True(t, m.IsReadBy("user-1"))
	assert.Len(t, m.ReadByUserIDs(), 1)
	assert.False(t, m.IsReadBy("user-2"))
}

func TestMarkAsReadByIsIdempotent(t *testing.T) {
	m, err := NewMessage("conv-1", "user-1", "checking in")
	require.NoError(t, err)

	m.MarkAsReadBy("user-2")
	m.MarkAsReadBy("user-2")

	count := 0
	for _, id := range m.ReadByUserIDs() {
		if id == "user-2" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMessageContentValidation(t *testing.T) {
	_, err := NewMessage("conv-1", "user-1", "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = NewMessage("conv-1", "user-1", strings.Repeat("x", 2001))
	require.Error(t, err)

	m, err := NewMessage("conv-1", "user-1", "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "trimmed", m.Content())

	require.NoError(t, m.UpdateContent("edited"))
	assert.Equal(t, "edited", m.Content())
	require.Error(t, m.UpdateContent(" "))
}

func TestConversationRecordRoundTrip(t *testing.T) {
	c, err := NewGroupConversation("Crew", []string{"user-1", "user-2"})
	require.NoError(t, err)
	m, err := NewMessage(c.ID(), "user-1", "hello")
	require.NoError(t, err)
	require.NoError(t, c.AddMessage(m))

	restored := RestoreConversation(c.Record(), []*Message{RestoreMessage(m.Record())})
	assert.Equal(t, c.ID(), restored.ID())
	assert.True(t, restored.IsGroup())
	require.Len(t, restored.Messages(), 1)
	assert.True(t, restored.Messages()[0].IsReadBy("user-1"))
	require.NotNil(t, restored.LastMessageAt())
}
