package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/repository"
	"github.com/oceantrail/divelog-api/pkg/mailer"
)

type ConversationService struct {
	Repo      repository.ConversationRepository
	Users     repository.UserRepository
	Publisher Publisher
	Logger    *logrus.Logger
}

func NewConversationService(repo repository.ConversationRepository, users repository.UserRepository, pub Publisher, logger *logrus.Logger) *ConversationService {
	return &ConversationService{Repo: repo, Users: users, Publisher: pub, Logger: logger}
}

func (s *ConversationService) StartPrivate(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	if _, err := s.Users.GetByID(ctx, userB); err != nil {
		return nil, err
	}
	c, err := entity.NewPrivateConversation(userA, userB)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConversationService) StartGroup(ctx context.Context, title string, participantIDs []string) (*entity.Conversation, error) {
	for _, id := range participantIDs {
		if _, err := s.Users.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	c, err := entity.NewGroupConversation(title, participantIDs)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConversationService) Get(ctx context.Context, id, requesterID string) (*entity.Conversation, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(requesterID) {
		return nil, domain.NewNotFoundError("conversation", id)
	}
	return c, nil
}

func (s *ConversationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// SendMessage appends a message and queues a notification for everyone else
// in the conversation.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, senderID, content string) (*entity.Message, error) {
	c, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	m, err := entity.NewMessage(conversationID, senderID, content)
	if err != nil {
		return nil, err
	}
	if err := c.AddMessage(m); err != nil {
		return nil, err
	}
	if err := s.Repo.AppendMessage(ctx, m); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.notifyRecipients(ctx, c, m)
	return m, nil
}

func (s *ConversationService) notifyRecipients(ctx context.Context, c *entity.Conversation, m *entity.Message) {
	if s.Publisher == nil {
		return
	}
	sender, err := s.Users.GetByID(ctx, m.SenderID())
	if err != nil {
		return
	}
	conversationID := c.ID()
	for _, id := range c.ParticipantIDs() {
		if id == m.SenderID() {
			continue
		}
		u, err := s.Users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		job := mailer.NotificationJob{
			UserID:      u.ID(),
			Email:       u.Email(),
			Type:        string(entity.NotificationNewMessage),
			Title:       "New message",
			Message:     sender.Username() + " sent you a message",
			Priority:    string(entity.PriorityNormal),
			ReferenceID: &conversationID,
		}
		if pErr := s.Publisher.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("conversation_id", conversationID).
				WithField("user_id", u.ID()).Warn("publish message notification failed")
		}
	}
}

func (s *ConversationService) ListMessages(ctx context.Context, conversationID, requesterID string, limit, offset int) ([]*entity.Message, error) {
	c, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(requesterID) {
		return nil, domain.NewNotFoundError("conversation", conversationID)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkMessageRead is idempotent. Reading a message you already read is a no-op.
func (s *ConversationService) MarkMessageRead(ctx context.Context, messageID, userID string) (*entity.Message, error) {
	m, err := s.Repo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	c, err := s.Repo.GetByID(ctx, m.ConversationID())
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, domain.NewNotFoundError("message", messageID)
	}
	m.MarkAsReadBy(userID)
	if err := s.Repo.UpdateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ConversationService) AddParticipant(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	c, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := c.AddParticipant(userID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConversationService) RemoveParticipant(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	c, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveParticipant(userID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConversationService) UpdateTitle(ctx context.Context, conversationID, title string) (*entity.Conversation, error) {
	c, err := s.Repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateTitle(title); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
