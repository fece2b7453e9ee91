package repositories

import (
	"context"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by login name.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsersByRole retrieves every user holding role.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// ListUsers retrieves every user.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserPreferenceStore defines per-user notification preferences
type UserPreferenceStore interface {
	// FindUserPreference returns the user's preferences, or apperrors.ErrNotFound when none were saved.
	FindUserPreference(ctx context.Context, userID string) (*domain.UserPreference, error)

	// SaveUserPreference inserts or replaces the user's preferences.
	SaveUserPreference(ctx context.Context, pref domain.UserPreference) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserPreferenceStore
}
