package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// ConversationRepository defines conversation persistence. Messages are
// stored alongside the conversation but appended and updated individually so
// sending one message does not rewrite the whole history.
type ConversationRepository interface {
	Create(ctx context.Context, c *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, error)
	Update(ctx context.Context, c *entity.Conversation) error
	AppendMessage(ctx context.Context, m *entity.Message) error
	UpdateMessage(ctx context.Context, m *entity.Message) error
	GetMessage(ctx context.Context, id string) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, error)
}
