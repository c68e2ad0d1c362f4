package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
)

const (
	maxConversationTitleLen  = 100
	minGroupParticipants     = 2
	privateParticipantsCount = 2
)

// Conversation is the aggregate root for a private or group chat. Private
// conversations have exactly two fixed participants; group conversations have
// a title and at least two members.
type Conversation struct {
	id             string
	isGroup        bool
	title          *string
	participantIDs []string
	messages       []*Message
	lastMessageAt  *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPrivateConversation creates a two-party conversation.
func NewPrivateConversation(userA, userB string) (*Conversation, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, domain.NewValidationError("participantIds", "both participants are required")
	}
	if userA == userB {
		return nil, domain.NewValidationError("participantIds", "a private conversation needs two distinct participants")
	}

	now := time.Now().UTC()
	return &Conversation{
		id:             uuid.NewString(),
		isGroup:        false,
		participantIDs: []string{userA, userB},
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// NewGroupConversation creates a titled conversation with at least two unique
// participants.
func NewGroupConversation(title string, participantIDs []string) (*Conversation, error) {
	t, err := validateConversationTitle(title)
	if err != nil {
		return nil, err
	}
	unique := uniqueNonEmpty(participantIDs)
	if len(unique) < minGroupParticipants {
		return nil, domain.NewValidationError("participantIds", "a group conversation needs at least 2 participants")
	}

	now := time.Now().UTC()
	return &Conversation{
		id:             uuid.NewString(),
		isGroup:        true,
		title:          &t,
		participantIDs: unique,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func validateConversationTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domain.NewValidationError("title", "is required for group conversations")
	}
	if len(title) > maxConversationTitleLen {
		return "", domain.NewValidationError("title", "must be at most 100 characters")
	}
	return title, nil
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddParticipant adds a member. Only legal on group conversations.
func (c *Conversation) AddParticipant(userID string) error {
	if !c.isGroup {
		return domain.NewStateConflictError("cannot add participants to a private conversation")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.NewValidationError("userId", "is required")
	}
	if c.HasParticipant(userID) {
		return domain.NewStateConflictError("user is already a participant")
	}
	c.participantIDs = append(c.participantIDs, userID)
	c.touch()
	return nil
}

// RemoveParticipant removes a member. Only legal on group conversations, and
// the group can never shrink below two members.
func (c *Conversation) RemoveParticipant(userID string) error {
	if !c.isGroup {
		return domain.NewStateConflictError("cannot remove participants from a private conversation")
	}
	if !c.HasParticipant(userID) {
		return domain.NewStateConflictError("user is not a participant")
	}
	if len(c.participantIDs) <= minGroupParticipants {
		return domain.NewStateConflictError("a group conversation needs at least 2 participants")
	}
	for i, id := range c.participantIDs {
		if id == userID {
			c.participantIDs = append(c.participantIDs[:i], c.participantIDs[i+1:]...)
			break
		}
	}
	c.touch()
	return nil
}

// UpdateTitle renames a group conversation.
func (c *Conversation) UpdateTitle(title string) error {
	if !c.isGroup {
		return domain.NewStateConflictError("private conversations have no title")
	}
	t, err := validateConversationTitle(title)
	if err != nil {
		return err
	}
	c.title = &t
	c.touch()
	return nil
}

// AddMessage appends a message to the conversation. The message must be
// addressed to this conversation and its sender must be a current
// participant.
func (c *Conversation) AddMessage(m *Message) error {
	if m.ConversationID() != c.id {
		return domain.NewValidationError("conversationId", "message belongs to a different conversation")
	}
	if !c.HasParticipant(m.SenderID()) {
		return domain.NewStateConflictError("sender is not a participant of this conversation")
	}
	c.messages = append(c.messages, m)
	sentAt := m.SentAt()
	c.lastMessageAt = &sentAt
	c.touch()
	return nil
}

// HasParticipant reports membership.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.participantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns a copy of the membership list.
func (c *Conversation) ParticipantIDs() []string {
	out := make([]string, len(c.participantIDs))
	copy(out, c.participantIDs)
	return out
}

// Messages returns the messages appended so far, in order.
func (c *Conversation) Messages() []*Message {
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) touch() { c.updatedAt = time.Now().UTC() }

func (c *Conversation) ID() string         { return c.id }
func (c *Conversation) IsGroup() bool      { return c.isGroup }
func (c *Conversation) Title() *string     { return copyOptional(c.title) }
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }
func (c *Conversation) UpdatedAt() time.Time { return c.updatedAt }

// LastMessageAt returns when the most recent message was appended, or nil.
func (c *Conversation) LastMessageAt() *time.Time {
	if c.lastMessageAt == nil {
		return nil
	}
	t := *c.lastMessageAt
	return &t
}

// ConversationRecord is the persistence mapping for Conversation. Messages
// are persisted separately through MessageRecord.
type ConversationRecord struct {
	ID             string
	IsGroup        bool
	Title          *string
	ParticipantIDs []string
	LastMessageAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreConversation rehydrates a conversation; messages are attached by the
// repository through RestoreMessage when needed.
func RestoreConversation(rec ConversationRecord, messages []*Message) *Conversation {
	ids := make([]string, len(rec.ParticipantIDs))
	copy(ids, rec.ParticipantIDs)
	return &Conversation{
		id:             rec.ID,
		isGroup:        rec.IsGroup,
		title:          rec.Title,
		participantIDs: ids,
		messages:       messages,
		lastMessageAt:  rec.LastMessageAt,
		createdAt:      rec.CreatedAt,
		updatedAt:      rec.UpdatedAt,
	}
}

// Record exports the conversation for persistence.
func (c *Conversation) Record() ConversationRecord {
	return ConversationRecord{
		ID:             c.id,
		IsGroup:        c.isGroup,
		Title:          c.title,
		ParticipantIDs: c.ParticipantIDs(),
		LastMessageAt:  c.LastMessageAt(),
		CreatedAt:      c.createdAt,
		UpdatedAt:      c.updatedAt,
	}
}
