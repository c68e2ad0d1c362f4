package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
)

// NotificationType identifies what a notification is about.
type NotificationType string

const (
	NotificationEventCancelled  NotificationType = "event_cancelled"
	NotificationEventReminder   NotificationType = "event_reminder"
	NotificationBuddyAdded      NotificationType = "buddy_added"
	NotificationNewMessage      NotificationType = "new_message"
	NotificationAchievement     NotificationType = "achievement_unlocked"
	NotificationSystemAnnounce  NotificationType = "system_announcement"
)

// NotificationPriority orders delivery urgency.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

const (
	maxNotificationTitleLen   = 200
	maxNotificationMessageLen = 1000
)

// Notification is a per-user message. Content and priority freeze once the
// notification has been read.
type Notification struct {
	id               string
	userID           string
	notificationType NotificationType
	title            string
	message          string
	priority         NotificationPriority
	isRead           bool
	readAt           *time.Time
	referenceID      *string
	createdAt        time.Time
}

// NewNotificationInput carries the arguments for NewNotification. Priority
// defaults to normal when empty.
type NewNotificationInput struct {
	UserID      string
	Type        NotificationType
	Title       string
	Message     string
	Priority    NotificationPriority
	ReferenceID *string
}

// NewNotification validates and creates an unread notification.
func NewNotification(in NewNotificationInput) (*Notification, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}
	if in.Type == "" {
		return nil, domain.NewValidationError("type", "is required")
	}
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if err := validateNotificationContent(title, message); err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh:
	default:
		return nil, domain.NewValidationError("priority", "must be low, normal or high")
	}

	return &Notification{
		id:               uuid.NewString(),
		userID:           in.UserID,
		notificationType: in.Type,
		title:            title,
		message:          message,
		priority:         priority,
		referenceID:      trimOptional(in.ReferenceID),
		createdAt:        time.Now().UTC(),
	}, nil
}

func validateNotificationContent(title, message string) error {
	if title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if len(title) > maxNotificationTitleLen {
		return domain.NewValidationError("title", "must be at most 200 characters")
	}
	if message == "" {
		return domain.NewValidationError("message", "is required")
	}
	if len(message) > maxNotificationMessageLen {
		return domain.NewValidationError("message", "must be at most 1000 characters")
	}
	return nil
}

// MarkAsRead records the read timestamp. Fails when already read.
func (n *Notification) MarkAsRead() error {
	if n.isRead {
		return domain.NewStateConflictError("notification is already read")
	}
	now := time.Now().UTC()
	n.isRead = true
	n.readAt = &now
	return nil
}

// MarkAsUnread clears the read state. Fails when not read.
func (n *Notification) MarkAsUnread() error {
	if !n.isRead {
		return domain.NewStateConflictError("notification is not read")
	}
	n.isRead = false
	n.readAt = nil
	return nil
}

// UpdatePriority changes urgency. Forbidden once read.
func (n *Notification) UpdatePriority(priority NotificationPriority) error {
	if n.isRead {
		return domain.NewStateConflictError("notification is frozen after being read")
	}
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh:
	default:
		return domain.NewValidationError("priority", "must be low, normal or high")
	}
	n.priority = priority
	return nil
}

// UpdateContent replaces title and message. Forbidden once read.
func (n *Notification) UpdateContent(title, message string) error {
	if n.isRead {
		return domain.NewStateConflictError("notification is frozen after being read")
	}
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if err := validateNotificationContent(title, message); err != nil {
		return err
	}
	n.title = title
	n.message = message
	return nil
}

func (n *Notification) ID() string                     { return n.id }
func (n *Notification) UserID() string                 { return n.userID }
func (n *Notification) Type() NotificationType         { return n.notificationType }
func (n *Notification) Title() string                  { return n.title }
func (n *Notification) Message() string                { return n.message }
func (n *Notification) Priority() NotificationPriority { return n.priority }
func (n *Notification) IsRead() bool                   { return n.isRead }
func (n *Notification) ReferenceID() *string           { return copyOptional(n.referenceID) }
func (n *Notification) CreatedAt() time.Time           { return n.createdAt }

// ReadAt returns when the notification was read, or nil.
func (n *Notification) ReadAt() *time.Time {
	if n.readAt == nil {
		return nil
	}
	t := *n.readAt
	return &t
}

// NotificationRecord is the persistence mapping for Notification.
type NotificationRecord struct {
	ID          string
	UserID      string
	Type        NotificationType
	Title       string
	Message     string
	Priority    NotificationPriority
	IsRead      bool
	ReadAt      *time.Time
	ReferenceID *string
	CreatedAt   time.Time
}

// RestoreNotification rehydrates a notification from the store.
func RestoreNotification(rec NotificationRecord) *Notification {
	return &Notification{
		id:               rec.ID,
		userID:           rec.UserID,
		notificationType: rec.Type,
		title:            rec.Title,
		message:          rec.Message,
		priority:         rec.Priority,
		isRead:           rec.IsRead,
		readAt:           rec.ReadAt,
		referenceID:      rec.ReferenceID,
		createdAt:        rec.CreatedAt,
	}
}

// Record exports the notification for persistence.
func (n *Notification) Record() NotificationRecord {
	return NotificationRecord{
		ID:          n.id,
		UserID:      n.userID,
		Type:        n.notificationType,
		Title:       n.title,
		Message:     n.message,
		Priority:    n.priority,
		IsRead:      n.isRead,
		ReadAt:      n.ReadAt(),
		ReferenceID: n.referenceID,
		CreatedAt:   n.createdAt,
	}
}
