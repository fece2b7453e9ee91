package domain

// User represents a staff member or client acting on plans.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	AuditFields
}

// UserPreference holds per-user channel switches. A nil flag means "not set" and
// is treated as enabled.
type UserPreference struct {
	UserID                    string `json:"userID"`
	EmailNotificationsEnabled *bool  `json:"emailNotificationsEnabled"`
	SMSNotificationsEnabled   *bool  `json:"smsNotificationsEnabled"`
}

// ChannelEnabled reports whether the user accepts deliveries over c.
func (p *UserPreference) ChannelEnabled(c Channel) bool {
	if p == nil {
		return true
	}
	var flag *bool
	switch c {
	case ChannelEmail:
		flag = p.EmailNotificationsEnabled
	case ChannelSMS:
		flag = p.SMSNotificationsEnabled
	}
	return flag == nil || *flag
}
