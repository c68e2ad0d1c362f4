package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// ConversationRepository persists conversations with participant and read
// lists in text[] columns. Messages carry their own rows and are appended
// individually so sending one does not rewrite the history.
type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

const conversationColumns = `id, is_group, title, participant_ids, last_message_at, created_at, updated_at`

const messageColumns = `id, conversation_id, sender_id, content, sent_at, read_by, updated_at`

func scanConversationRow(row pgx.Row) (entity.ConversationRecord, error) {
	var rec entity.ConversationRecord
	err := row.Scan(&rec.ID, &rec.IsGroup, &rec.Title, &rec.ParticipantIDs,
		&rec.LastMessageAt, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var rec entity.MessageRecord
	if err := row.Scan(&rec.ID, &rec.ConversationID, &rec.SenderID, &rec.Content,
		&rec.SentAt, &rec.ReadByUserIDs, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return entity.RestoreMessage(rec), nil
}

func (r *ConversationRepository) Create(ctx context.Context, c *entity.Conversation) error {
	rec := c.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO conversations (`+conversationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.IsGroup, rec.Title, rec.ParticipantIDs, rec.LastMessageAt,
		rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	rec, err := scanConversationRow(r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("conversation", id)
		}
		return nil, err
	}

	messages, err := r.ListMessages(ctx, id, messageHistoryLimit, 0)
	if err != nil {
		return nil, err
	}
	return entity.RestoreConversation(rec, messages), nil
}

// messageHistoryLimit bounds the history attached when loading a
// conversation. Older messages stay reachable through ListMessages.
const messageHistoryLimit = 100

func (r *ConversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations
		WHERE $1 = ANY(participant_ids)
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convos := make([]*entity.Conversation, 0)
	for rows.Next() {
		rec, err := scanConversationRow(rows)
		if err != nil {
			return nil, err
		}
		convos = append(convos, entity.RestoreConversation(rec, nil))
	}
	return convos, rows.Err()
}

func (r *ConversationRepository) Update(ctx context.Context, c *entity.Conversation) error {
	rec := c.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE conversations
		SET is_group = $2, title = $3, participant_ids = $4, last_message_at = $5, updated_at = $6
		WHERE id = $1
	`, rec.ID, rec.IsGroup, rec.Title, rec.ParticipantIDs, rec.LastMessageAt, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("conversation", rec.ID)
	}
	return nil
}

func (r *ConversationRepository) AppendMessage(ctx context.Context, m *entity.Message) error {
	rec := m.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.ConversationID, rec.SenderID, rec.Content, rec.SentAt,
		rec.ReadByUserIDs, rec.UpdatedAt)
	return err
}

func (r *ConversationRepository) UpdateMessage(ctx context.Context, m *entity.Message) error {
	rec := m.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET content = $2, read_by = $3, updated_at = $4
		WHERE id = $1
	`, rec.ID, rec.Content, rec.ReadByUserIDs, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("message", rec.ID)
	}
	return nil
}

func (r *ConversationRepository) GetMessage(ctx context.Context, id string) (*entity.Message, error) {
	m, err := scanMessage(r.pool.QueryRow(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("message", id)
		}
		return nil, err
	}
	return m, nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*entity.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
