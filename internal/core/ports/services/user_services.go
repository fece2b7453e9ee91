package services

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves every user.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks username/password and returns the user.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserPreferenceSvc defines notification preference operations
type UserPreferenceSvc interface {
	// GetPreferences returns the user's preferences; unset flags mean enabled.
	GetPreferences(ctx context.Context, userID string) (*domain.UserPreference, error)

	// UpdatePreferences applies the non-nil fields of req.
	UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreference, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserPreferenceSvc
}
