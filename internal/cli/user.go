package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/utils"
	"github.com/spf13/cobra"
)

var (
	createUserUsername string
	createUserPassword string
	createUserName     string
	createUserRole     string
	createUserEmail    string
	createUserPhone    string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Register a user directly in the database",
	Long:  "Creates a staff member or client. A random password is generated and printed when --password is omitted.",
	RunE:  runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVarP(&createUserUsername, "username", "u", "", "Login name (required)")
	createUserCmd.Flags().StringVarP(&createUserPassword, "password", "p", "", "Password; generated when empty")
	createUserCmd.Flags().StringVar(&createUserName, "name", "", "Display name (defaults to the username)")
	createUserCmd.Flags().StringVarP(&createUserRole, "role", "r", "", "One of Planning, Director, Structural, Committee, Reception, Client (required)")
	createUserCmd.Flags().StringVar(&createUserEmail, "email", "", "Email address")
	createUserCmd.Flags().StringVar(&createUserPhone, "phone", "", "Phone number in E.164 form")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("role")
}

// newUser is the CLI-side description of a user to create.
type newUser struct {
	Username string
	Password string
	Name     string
	Role     domain.Role
	Email    string
	Phone    string
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	ctx := context.Background()

	role := domain.Role(createUserRole)
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", createUserRole)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StoreDriver == config.StoreDriverMemory {
		return fmt.Errorf("create-user needs a persistent store; use serve --admin-username with the memory driver")
	}

	repos, closeRepos, err := openRepositories(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	nu := newUser{
		Username: createUserUsername,
		Password: createUserPassword,
		Name:     createUserName,
		Role:     role,
		Email:    createUserEmail,
		Phone:    createUserPhone,
	}
	generated := nu.Password == ""
	if generated {
		nu.Password, err = utils.GenerateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
	}

	user, err := createUser(ctx, services.NewUserService(repos.UserRepo), nu)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", user.Role, user.Username, user.UserID)
	if generated {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated password: %s\n", nu.Password)
	}
	return nil
}

func createUser(ctx context.Context, userSvc portssvc.UserSvcFacade, nu newUser) (*domain.User, error) {
	name := nu.Name
	if name == "" {
		name = nu.Username
	}
	user, err := userSvc.CreateUser(ctx, dto.CreateUserRequest{
		Username: nu.Username,
		Password: nu.Password,
		Name:     name,
		Role:     string(nu.Role),
		Email:    nu.Email,
		Phone:    nu.Phone,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", nu.Username, err)
	}
	return user, nil
}

// ensureUser creates the user unless a user with the same username already exists.
func ensureUser(ctx context.Context, users portsrepo.UserRepositoryFacade, userSvc portssvc.UserSvcFacade, nu newUser, logger *slog.Logger) error {
	existing, err := users.FindUserByUsername(ctx, nu.Username)
	if err == nil {
		logger.Info("Bootstrap user already exists", slog.String("username", existing.Username))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap user: %w", err)
	}
	if nu.Password == "" {
		return fmt.Errorf("a password is required to create bootstrap user %q", nu.Username)
	}
	user, err := createUser(ctx, userSvc, nu)
	if err != nil {
		return err
	}
	logger.Info("Bootstrap user created", slog.String("username", user.Username), slog.String("role", string(user.Role)))
	return nil
}
