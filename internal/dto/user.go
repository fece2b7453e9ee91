package dto

import (
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

// ToPreferencesResponse reports the effective switches, treating unset as enabled.
func ToPreferencesResponse(pref *domain.UserPreference) PreferencesResponse {
	return PreferencesResponse{
		EmailNotificationsEnabled: pref.ChannelEnabled(domain.ChannelEmail),
		SMSNotificationsEnabled:   pref.ChannelEnabled(domain.ChannelSMS),
	}
}
