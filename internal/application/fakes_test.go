package application

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/values"
	"github.com/oceantrail/divelog-api/pkg/mailer"
)

// In-memory repository fakes. They keep insertion order where the real
// queries order by time, which is equivalent for sequential test writes.

type fakePublisher struct {
	jobs []mailer.NotificationJob
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if job, ok := body.(mailer.NotificationJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return nil
}

type credential struct {
	userID string
	hash   string
}

type fakeUserRepo struct {
	users map[string]*entity.User
	creds map[string]credential
	order []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, creds: map[string]credential{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User, passwordHash string) error {
	r.users[u.ID()] = u
	r.creds[u.Email()] = credential{userID: u.ID(), hash: passwordHash}
	r.order = append(r.order, u.ID())
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user", username)
}

func (r *fakeUserRepo) GetCredentials(_ context.Context, email string) (string, string, error) {
	c, ok := r.creds[email]
	if !ok {
		return "", "", domain.NewNotFoundError("user", email)
	}
	return c.userID, c.hash, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID())
	}
	r.users[u.ID()] = u
	return nil
}

type fakeDiveLogRepo struct {
	logs  map[string]*entity.DiveLog
	order []string
}

func newFakeDiveLogRepo() *fakeDiveLogRepo {
	return &fakeDiveLogRepo{logs: map[string]*entity.DiveLog{}}
}

func (r *fakeDiveLogRepo) Create(_ context.Context, d *entity.DiveLog) error {
	r.logs[d.ID()] = d
	r.order = append(r.order, d.ID())
	return nil
}

func (r *fakeDiveLogRepo) GetByID(_ context.Context, id string) (*entity.DiveLog, error) {
	d, ok := r.logs[id]
	if !ok {
		return nil, domain.NewNotFoundError("dive log", id)
	}
	return d, nil
}

func (r *fakeDiveLogRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.DiveLog, error) {
	var out []*entity.DiveLog
	for _, id := range r.order {
		if d := r.logs[id]; d != nil && d.UserID() == userID {
			out = append(out, d)
		}
	}
	return window(out, limit, offset), nil
}

func (r *fakeDiveLogRepo) Update(_ context.Context, d *entity.DiveLog) error {
	if _, ok := r.logs[d.ID()]; !ok {
		return domain.NewNotFoundError("dive log", d.ID())
	}
	r.logs[d.ID()] = d
	return nil
}

func (r *fakeDiveLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.logs[id]; !ok {
		return domain.NewNotFoundError("dive log", id)
	}
	delete(r.logs, id)
	return nil
}

type fakeSpotRepo struct {
	spots map[string]*entity.DivingSpot
	order []string
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{spots: map[string]*entity.DivingSpot{}}
}

func (r *fakeSpotRepo) Create(_ context.Context, s *entity.DivingSpot) error {
	r.spots[s.ID()] = s
	r.order = append(r.order, s.ID())
	return nil
}

func (r *fakeSpotRepo) GetByID(_ context.Context, id string) (*entity.DivingSpot, error) {
	s, ok := r.spots[id]
	if !ok {
		return nil, domain.NewNotFoundError("diving spot", id)
	}
	return s, nil
}

func (r *fakeSpotRepo) List(_ context.Context, limit, offset int) ([]*entity.DivingSpot, error) {
	var out []*entity.DivingSpot
	for _, id := range r.order {
		out = append(out, r.spots[id])
	}
	return window(out, limit, offset), nil
}

func (r *fakeSpotRepo) Update(_ context.Context, s *entity.DivingSpot) error {
	if _, ok := r.spots[s.ID()]; !ok {
		return domain.NewNotFoundError("diving spot", s.ID())
	}
	r.spots[s.ID()] = s
	return nil
}

type fakeEventRepo struct {
	events map[string]*entity.Event
	order  []string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*entity.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	r.events[e.ID()] = e
	r.order = append(r.order, e.ID())
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.NewNotFoundError("event", id)
	}
	return e, nil
}

func (r *fakeEventRepo) ListUpcoming(_ context.Context, limit, offset int) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, id := range r.order {
		if e := r.events[id]; e.Status() == entity.EventScheduled {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventDate().Before(out[j].EventDate()) })
	return window(out, limit, offset), nil
}

func (r *fakeEventRepo) ListByOrganizer(_ context.Context, organizerID string, limit, offset int) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, id := range r.order {
		if e := r.events[id]; e.OrganizerID() == organizerID {
			out = append(out, e)
		}
	}
	return window(out, limit, offset), nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *entity.Event) error {
	if _, ok := r.events[e.ID()]; !ok {
		return domain.NewNotFoundError("event", e.ID())
	}
	r.events[e.ID()] = e
	return nil
}

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string]*entity.Message
	messageOrder  []string
	order         []string
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[string]*entity.Conversation{},
		messages:      map[string]*entity.Message{},
	}
}

func (r *fakeConversationRepo) Create(_ context.Context, c *entity.Conversation) error {
	r.conversations[c.ID()] = c
	r.order = append(r.order, c.ID())
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*entity.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, domain.NewNotFoundError("conversation", id)
	}
	return c, nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, id := range r.order {
		if c := r.conversations[id]; c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return window(out, limit, offset), nil
}

func (r *fakeConversationRepo) Update(_ context.Context, c *entity.Conversation) error {
	if _, ok := r.conversations[c.ID()]; !ok {
		return domain.NewNotFoundError("conversation", c.ID())
	}
	r.conversations[c.ID()] = c
	return nil
}

func (r *fakeConversationRepo) AppendMessage(_ context.Context, m *entity.Message) error {
	r.messages[m.ID()] = m
	r.messageOrder = append(r.messageOrder, m.ID())
	return nil
}

func (r *fakeConversationRepo) UpdateMessage(_ context.Context, m *entity.Message) error {
	if _, ok := r.messages[m.ID()]; !ok {
		return domain.NewNotFoundError("message", m.ID())
	}
	r.messages[m.ID()] = m
	return nil
}

func (r *fakeConversationRepo) GetMessage(_ context.Context, id string) (*entity.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.NewNotFoundError("message", id)
	}
	return m, nil
}

func (r *fakeConversationRepo) ListMessages(_ context.Context, conversationID string, limit, offset int) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, id := range r.messageOrder {
		if m := r.messages[id]; m.ConversationID() == conversationID {
			out = append(out, m)
		}
	}
	return window(out, limit, offset), nil
}

type fakeAchievementRepo struct {
	achievements map[string]*entity.Achievement
	unlocks      map[string]*entity.UserAchievement
	order        []string
	unlockOrder  []string
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{
		achievements: map[string]*entity.Achievement{},
		unlocks:      map[string]*entity.UserAchievement{},
	}
}

func (r *fakeAchievementRepo) Create(_ context.Context, a *entity.Achievement) error {
	r.achievements[a.ID()] = a
	r.order = append(r.order, a.ID())
	return nil
}

func (r *fakeAchievementRepo) GetByID(_ context.Context, id string) (*entity.Achievement, error) {
	a, ok := r.achievements[id]
	if !ok {
		return nil, domain.NewNotFoundError("achievement", id)
	}
	return a, nil
}

func (r *fakeAchievementRepo) List(_ context.Context, includeSecret bool) ([]*entity.Achievement, error) {
	var out []*entity.Achievement
	for _, id := range r.order {
		if a := r.achievements[id]; includeSecret || !a.IsSecret() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) Update(_ context.Context, a *entity.Achievement) error {
	if _, ok := r.achievements[a.ID()]; !ok {
		return domain.NewNotFoundError("achievement", a.ID())
	}
	r.achievements[a.ID()] = a
	return nil
}

func (r *fakeAchievementRepo) Unlock(_ context.Context, ua *entity.UserAchievement) error {
	r.unlocks[ua.ID()] = ua
	r.unlockOrder = append(r.unlockOrder, ua.ID())
	return nil
}

func (r *fakeAchievementRepo) GetUnlock(_ context.Context, userID, achievementID string) (*entity.UserAchievement, error) {
	for _, ua := range r.unlocks {
		if ua.UserID() == userID && ua.AchievementID() == achievementID {
			return ua, nil
		}
	}
	return nil, domain.NewNotFoundError("user achievement", achievementID)
}

func (r *fakeAchievementRepo) ListUnlocksByUser(_ context.Context, userID string) ([]*entity.UserAchievement, error) {
	var out []*entity.UserAchievement
	for _, id := range r.unlockOrder {
		if ua := r.unlocks[id]; ua.UserID() == userID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) UpdateUnlock(_ context.Context, ua *entity.UserAchievement) error {
	if _, ok := r.unlocks[ua.ID()]; !ok {
		return domain.NewNotFoundError("user achievement", ua.ID())
	}
	r.unlocks[ua.ID()] = ua
	return nil
}

type fakeNotificationRepo struct {
	notifications map[string]*entity.Notification
	order         []string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[string]*entity.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.notifications[n.ID()] = n
	r.order = append(r.order, n.ID())
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, domain.NewNotFoundError("notification", id)
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, id := range r.order {
		n := r.notifications[id]
		if n.UserID() != userID {
			continue
		}
		if unreadOnly && n.IsRead() {
			continue
		}
		out = append(out, n)
	}
	return window(out, limit, offset), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID() == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, n *entity.Notification) error {
	if _, ok := r.notifications[n.ID()]; !ok {
		return domain.NewNotFoundError("notification", n.ID())
	}
	r.notifications[n.ID()] = n
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, username string) *entity.User {
	t.Helper()
	profile, err := values.NewUserProfile("Ari", "Wijaya", "", nil)
	require.NoError(t, err)
	u, err := entity.NewUser(email, username, profile)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u, "x"))
	return u
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
