package cli

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/plan_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/notify"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/plan_approval_app/internal/repositories/memory"
	"github.com/SscSPs/plan_approval_app/pkg/database"
)

// openRepositories returns the repository set for the configured store driver.
// The returned cleanup must be called once the repositories are no longer used.
func openRepositories(ctx context.Context, cfg *config.Config, runMigrations bool, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using in-memory store; data is lost on exit")
		return memory.NewStore().Provider(), func() {}, nil
	}

	if runMigrations {
		logger.Info("Running database migrations...")
		changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, 0, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if changed {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// openTransport returns the outbound message transport for the configured backend.
func openTransport(cfg config.NotificationConfig, logger *slog.Logger) (portssvc.MessageTransport, func(), error) {
	if cfg.Transport != config.TransportKafka {
		return notify.NewLogTransport(logger), func() {}, nil
	}

	producer, err := notify.NewSaramaSyncProducer(cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	transport := notify.NewKafkaTransport(producer, cfg.KafkaTopic, logger)
	closeFn := func() {
		if err := transport.Close(); err != nil {
			logger.Error("Error closing kafka producer", slog.String("error", err.Error()))
		}
	}
	return transport, closeFn, nil
}
