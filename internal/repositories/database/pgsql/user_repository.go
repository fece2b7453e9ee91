package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/plan_approval_app/internal/models"
	"github.com/SscSPs/plan_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, role, email, phone,
	created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Name,
		&m.Role,
		&m.Email,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Name,
		m.Role,
		m.Email,
		m.Phone,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, key string) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user " + key)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", key, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at ASC;`, string(role))
}

func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC;`)
}

func (r *PgxUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) FindUserPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	query := `
		SELECT user_id, email_notifications_enabled, sms_notifications_enabled
		FROM user_preferences
		WHERE user_id = $1;
	`
	var m models.UserPreference
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.EmailNotificationsEnabled, &m.SMSNotificationsEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("preferences for user " + userID)
		}
		return nil, fmt.Errorf("failed to find preferences for user %s: %w", userID, err)
	}
	pref := mapping.ToDomainUserPreference(m)
	return &pref, nil
}

func (r *PgxUserRepository) SaveUserPreference(ctx context.Context, pref domain.UserPreference) error {
	m := mapping.ToModelUserPreference(pref)
	query := `
		INSERT INTO user_preferences (user_id, email_notifications_enabled, sms_notifications_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications_enabled = EXCLUDED.email_notifications_enabled,
			sms_notifications_enabled = EXCLUDED.sms_notifications_enabled;
	`
	if _, err := r.Pool.Exec(ctx, query, m.UserID, m.EmailNotificationsEnabled, m.SMSNotificationsEnabled); err != nil {
		return fmt.Errorf("failed to save user preferences: %w", err)
	}
	return nil
}
