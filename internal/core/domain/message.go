package domain

import (
	"strings"
	"time"
)

// Channel is a notification delivery channel.
type Channel string

const (
	ChannelEmail Channel = "Email"
	ChannelSMS   Channel = "SMS"
)

// TemplateName returns the per-channel sub-template name for a base template.
func (c Channel) TemplateName(base string) string {
	return base + "_" + string(c)
}

// MessageTemplate holds a subject/body pair with {placeholder} tokens.
type MessageTemplate struct {
	TemplateID string `json:"templateID"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// MessageStatus is the recorded outcome of one delivery attempt.
type MessageStatus string

const (
	MessageDelivered         MessageStatus = "Delivered"
	MessageFailed            MessageStatus = "Failed"
	MessageSkippedDisabled   MessageStatus = "Skipped (Disabled)"
	MessageSkippedChannelOff MessageStatus = "Skipped (Channel Disabled)"
	MessageSkippedNoContact  MessageStatus = "Skipped (No Contact)"
	MessageSkippedNoTemplate MessageStatus = "Skipped (No Template)"
)

// IsSkipped reports whether delivery was intentionally not attempted.
func (s MessageStatus) IsSkipped() bool {
	return strings.HasPrefix(string(s), "Skipped")
}

// MessageLog records one delivery attempt over one channel.
type MessageLog struct {
	MessageLogID string        `json:"messageLogID"`
	Recipient    string        `json:"recipient"`
	Channel      Channel       `json:"channel"`
	Subject      string        `json:"subject"`
	Body         string        `json:"body"`
	Status       MessageStatus `json:"status"`
	Detail       string        `json:"detail"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Substitution is a single placeholder key and its replacement value.
type Substitution struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TargetKind selects how a notification target resolves to recipients.
type TargetKind string

const (
	TargetUser     TargetKind = "User"
	TargetRole     TargetKind = "Role"
	TargetAllUsers TargetKind = "AllUsers"
)

// NotificationTarget names who should receive a notification.
type NotificationTarget struct {
	Kind   TargetKind `json:"kind"`
	UserID string     `json:"userID,omitempty"`
	Role   Role       `json:"role,omitempty"`
}

// UserTarget targets a single user.
func UserTarget(userID string) NotificationTarget {
	return NotificationTarget{Kind: TargetUser, UserID: userID}
}

// RoleTarget targets every user holding role.
func RoleTarget(role Role) NotificationTarget {
	return NotificationTarget{Kind: TargetRole, Role: role}
}

// BroadcastTarget targets every user.
func BroadcastTarget() NotificationTarget {
	return NotificationTarget{Kind: TargetAllUsers}
}

// NotificationRequest asks the notification bridge to render and deliver a template.
type NotificationRequest struct {
	Target        NotificationTarget `json:"target"`
	TemplateBase  string             `json:"templateBase"`
	Substitutions []Substitution     `json:"substitutions"`
}
