package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
)

func newConversationFixture(t *testing.T) (*ConversationService, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	users := newFakeUserRepo()
	pub := &fakePublisher{}
	return NewConversationService(newFakeConversationRepo(), users, pub, nil), users, pub
}

func TestStartPrivateUnknownPeer(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")

	_, err := svc.StartPrivate(context.Background(), a.ID(), "ghost")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetHidesConversationFromOutsiders(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")
	outsider := seedUser(t, users, "c@divelog.dev", "diverC")

	c, err := svc.StartPrivate(context.Background(), a.ID(), b.ID())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), c.ID(), outsider.ID())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	got, err := svc.Get(context.Background(), c.ID(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, c.ID(), got.ID())
}

func TestSendMessageNotifiesOtherParticipants(t *testing.T) {
	svc, users, pub := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")
	c := seedUser(t, users, "c@divelog.dev", "diverC")

	conv, err := svc.StartGroup(context.Background(), "Trip planning", []string{a.ID(), b.ID(), c.ID()})
	require.NoError(t, err)

	m, err := svc.SendMessage(context.Background(), conv.ID(), a.ID(), "Boat leaves at 7, don't be late")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), m.SenderID())

	conv, err = svc.Get(context.Background(), conv.ID(), a.ID())
	require.NoError(t, err)
	require.NotNil(t, conv.LastMessageAt())

	// sender is not notified
	require.Len(t, pub.jobs, 2)
	recipients := []string{pub.jobs[0].UserID, pub.jobs[1].UserID}
	assert.ElementsMatch(t, []string{b.ID(), c.ID()}, recipients)
	assert.Equal(t, "new_message", pub.jobs[0].Type)
}

func TestMarkMessageRead(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")

	conv, err := svc.StartPrivate(context.Background(), a.ID(), b.ID())
	require.NoError(t, err)
	m, err := svc.SendMessage(context.Background(), conv.ID(), a.ID(), "Surface interval?")
	require.NoError(t, err)

	m, err = svc.MarkMessageRead(context.Background(), m.ID(), b.ID())
	require.NoError(t, err)
	assert.True(t, m.IsReadBy(b.ID()))

	// idempotent
	m, err = svc.MarkMessageRead(context.Background(), m.ID(), b.ID())
	require.NoError(t, err)
	assert.Len(t, m.ReadByUserIDs(), 1)
}

func TestMarkMessageReadRequiresMembership(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")
	outsider := seedUser(t, users, "c@divelog.dev", "diverC")

	conv, err := svc.StartPrivate(context.Background(), a.ID(), b.ID())
	require.NoError(t, err)
	m, err := svc.SendMessage(context.Background(), conv.ID(), a.ID(), "hello")
	require.NoError(t, err)

	_, err = svc.MarkMessageRead(context.Background(), m.ID(), outsider.ID())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestListMessages(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")

	conv, err := svc.StartPrivate(context.Background(), a.ID(), b.ID())
	require.NoError(t, err)
	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(context.Background(), conv.ID(), a.ID(), text)
		require.NoError(t, err)
	}

	msgs, err := svc.ListMessages(context.Background(), conv.ID(), b.ID(), 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content())
}

func TestGroupMembership(t *testing.T) {
	svc, users, _ := newConversationFixture(t)
	a := seedUser(t, users, "a@divelog.dev", "diverA")
	b := seedUser(t, users, "b@divelog.dev", "diverB")
	c := seedUser(t, users, "c@divelog.dev", "diverC")

	conv, err := svc.StartGroup(context.Background(), "Club", []string{a.ID(), b.ID()})
	require.NoError(t, err)

	conv, err = svc.AddParticipant(context.Background(), conv.ID(), c.ID())
	require.NoError(t, err)
	assert.True(t, conv.HasParticipant(c.ID()))

	conv, err = svc.RemoveParticipant(context.Background(), conv.ID(), c.ID())
	require.NoError(t, err)
	assert.False(t, conv.HasParticipant(c.ID()))
}
