package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
)

const maxMessageContentLen = 2000

// Message is a child of Conversation. The sender is always counted as having
// read their own message.
type Message struct {
	id             string
	conversationID string
	senderID       string
	content        string
	sentAt         time.Time
	readByUserIDs  []string
	updatedAt      time.Time
}

// NewMessage validates content and creates a message addressed to the given
// conversation. Membership of the sender is checked by
// Conversation.AddMessage, which is where the message enters the aggregate.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, domain.NewValidationError("conversationId", "is required")
	}
	if strings.TrimSpace(senderID) == "" {
		return nil, domain.NewValidationError("senderId", "is required")
	}
	content, err := validateMessageContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Message{
		id:             uuid.NewString(),
		conversationID: conversationID,
		senderID:       senderID,
		content:        content,
		sentAt:         now,
		readByUserIDs:  []string{senderID},
		updatedAt:      now,
	}, nil
}

func validateMessageContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.NewValidationError("content", "is required")
	}
	if len(content) > maxMessageContentLen {
		return "", domain.NewValidationError("content", "must be at most 2000 characters")
	}
	return content, nil
}

// MarkAsReadBy records that a user has read the message. Repeated calls are
// no-ops, not errors.
func (m *Message) MarkAsReadBy(userID string) {
	for _, id := range m.readByUserIDs {
		if id == userID {
			return
		}
	}
	m.readByUserIDs = append(m.readByUserIDs, userID)
}

// IsReadBy reports whether the user has read the message.
func (m *Message) IsReadBy(userID string) bool {
	for _, id := range m.readByUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// UpdateContent replaces the message text, re-validating it.
func (m *Message) UpdateContent(content string) error {
	content, err := validateMessageContent(content)
	if err != nil {
		return err
	}
	m.content = content
	m.updatedAt = time.Now().UTC()
	return nil
}

func (m *Message) ID() string             { return m.id }
func (m *Message) ConversationID() string { return m.conversationID }
func (m *Message) SenderID() string       { return m.senderID }
func (m *Message) Content() string        { return m.content }
func (m *Message) SentAt() time.Time      { return m.sentAt }
func (m *Message) UpdatedAt() time.Time   { return m.updatedAt }

// ReadByUserIDs returns a copy of the read-mark set.
func (m *Message) ReadByUserIDs() []string {
	out := make([]string, len(m.readByUserIDs))
	copy(out, m.readByUserIDs)
	return out
}

// MessageRecord is the persistence mapping for Message.
type MessageRecord struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	SentAt         time.Time
	ReadByUserIDs  []string
	UpdatedAt      time.Time
}

// RestoreMessage rehydrates a message from the store.
func RestoreMessage(rec MessageRecord) *Message {
	readBy := make([]string, len(rec.ReadByUserIDs))
	copy(readBy, rec.ReadByUserIDs)
	return &Message{
		id:             rec.ID,
		conversationID: rec.ConversationID,
		senderID:       rec.SenderID,
		content:        rec.Content,
		sentAt:         rec.SentAt,
		readByUserIDs:  readBy,
		updatedAt:      rec.UpdatedAt,
	}
}

// Record exports the message for persistence.
func (m *Message) Record() MessageRecord {
	return MessageRecord{
		ID:             m.id,
		ConversationID: m.conversationID,
		SenderID:       m.senderID,
		Content:        m.content,
		SentAt:         m.sentAt,
		ReadByUserIDs:  m.ReadByUserIDs(),
		UpdatedAt:      m.updatedAt,
	}
}
