package models

import "database/sql"

// User represents a user of the application.
// Email and phone are optional contact points used by the notification bridge.
type User struct {
	UserID       string         `json:"userID"`
	Username     string         `json:"username" db:"username"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Name         string         `json:"name"`
	Role         string         `json:"role" db:"role"`
	Email        sql.NullString `json:"email" db:"email"`
	Phone        sql.NullString `json:"phone" db:"phone"`
	AuditFields
}

// UserPreference is a row of user_preferences; NULL flags mean "not set".
type UserPreference struct {
	UserID                    string       `db:"user_id"`
	EmailNotificationsEnabled sql.NullBool `db:"email_notifications_enabled"`
	SMSNotificationsEnabled   sql.NullBool `db:"sms_notifications_enabled"`
}
