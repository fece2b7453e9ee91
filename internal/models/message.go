package models

import "time"

// MessageTemplate is a row of message_templates.
type MessageTemplate struct {
	TemplateID string `db:"template_id"`
	Name       string `db:"name"`
	Subject    string `db:"subject"`
	Body       string `db:"body"`
}

// MessageLog is a row of message_logs.
type MessageLog struct {
	MessageLogID string    `db:"message_log_id"`
	Recipient    string    `db:"recipient"`
	Channel      string    `db:"channel"`
	Subject      string    `db:"subject"`
	Body         string    `db:"body"`
	Status       string    `db:"status"`
	Detail       string    `db:"detail"`
	CreatedAt    time.Time `db:"created_at"`
}
