package dto

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// CreateUserRequest defines the data needed to register a staff user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,e164"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdatePreferencesRequest changes notification channel switches.
// Omitted fields keep their current value.
type UpdatePreferencesRequest struct {
	EmailNotificationsEnabled *bool `json:"emailNotificationsEnabled"`
	SMSNotificationsEnabled   *bool `json:"smsNotificationsEnabled"`
}

// PreferencesResponse reports effective notification switches.
type PreferencesResponse struct {
	EmailNotificationsEnabled bool `json:"emailNotificationsEnabled"`
	SMSNotificationsEnabled   bool `json:"smsNotificationsEnabled"`
}
