package mailer

// NotificationJob is the JSON payload put on the RabbitMQ queue when the API
// fans out a domain notification. The worker persists it and, for
// high-priority jobs, also emails the recipient.
type NotificationJob struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email,omitempty"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Priority    string  `json:"priority,omitempty"` // low, normal, high
	ReferenceID *string `json:"reference_id,omitempty"`
}
