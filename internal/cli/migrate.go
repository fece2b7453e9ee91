package cli

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/pkg/database"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert database migrations",
	Long:      "Runs the SQL migrations in MIGRATIONS_PATH against PGSQL_URL. Without --steps, up applies everything pending and down reverts everything.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().IntVarP(&migrateSteps, "steps", "n", 0, "Number of migrations to apply or revert (0 = all)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("PGSQL_URL is not set")
	}

	direction := database.MigrationDirection(args[0])
	changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction, migrateSteps, logger)
	if err != nil {
		return err
	}
	if !changed {
		logger.Info("No migrations to run.", slog.String("direction", string(direction)))
		return nil
	}
	logger.Info("Migrations finished.", slog.String("direction", string(direction)), slog.Int("steps", migrateSteps))
	return nil
}
