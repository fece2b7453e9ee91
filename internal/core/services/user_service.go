package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}
	hash, err := utils.HashPassword(req.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newUserID := uuid.NewString()
	if creatorUserID == "" {
		creatorUserID = newUserID
	}
	user := domain.User{
		UserID:       newUserID,
		Username:     req.Username,
		Name:         req.Name,
		Role:         role,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) GetPreferences(ctx context.Context, userID string) (*domain.UserPreference, error) {
	pref, err := s.userRepo.FindUserPreference(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &domain.UserPreference{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return pref, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreference, error) {
	pref, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.EmailNotificationsEnabled != nil {
		pref.EmailNotificationsEnabled = req.EmailNotificationsEnabled
	}
	if req.SMSNotificationsEnabled != nil {
		pref.SMSNotificationsEnabled = req.SMSNotificationsEnabled
	}
	if err := s.userRepo.SaveUserPreference(ctx, *pref); err != nil {
		s.LogError(ctx, err, "Failed to save preferences", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return pref, nil
}
