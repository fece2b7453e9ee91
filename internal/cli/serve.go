package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	"github.com/SscSPs/plan_approval_app/internal/core/services"
	"github.com/SscSPs/plan_approval_app/internal/documents"
	"github.com/SscSPs/plan_approval_app/internal/handlers"
	"github.com/SscSPs/plan_approval_app/internal/metrics"
	"github.com/SscSPs/plan_approval_app/internal/platform/config"
	"github.com/SscSPs/plan_approval_app/internal/seed"
	"github.com/SscSPs/plan_approval_app/internal/storage"
	"github.com/spf13/cobra"
)

var (
	serveSkipMigrations bool
	serveAdminUsername  string
	serveAdminPassword  string
	serveShutdownWait   time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Migrates the database (unless skipped), seeds message templates and serves the plan approval API until interrupted.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveSkipMigrations, "skip-migrations", false, "Do not apply pending migrations on start")
	serveCmd.Flags().StringVar(&serveAdminUsername, "admin-username", "", "Create a Planning user with this username if it does not exist")
	serveCmd.Flags().StringVar(&serveAdminPassword, "admin-password", "", "Password for --admin-username")
	serveCmd.Flags().DurationVar(&serveShutdownWait, "shutdown-timeout", 5*time.Second, "How long to wait for in-flight work on shutdown")
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	metrics.Init()

	repos, closeRepos, err := openRepositories(ctx, cfg, !serveSkipMigrations, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	files, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	transport, closeTransport, err := openTransport(cfg.Notification, logger)
	if err != nil {
		return err
	}
	defer closeTransport()

	if _, err := seed.SeedTemplates(ctx, repos.MessageRepo, cfg.TemplateSeedFile, logger); err != nil {
		return fmt.Errorf("failed to seed message templates: %w", err)
	}

	svc := services.NewServiceContainer(cfg, repos, services.Collaborators{
		Files:     files,
		Generator: documents.NewGenerator(files),
		Transport: transport,
	})

	if serveAdminUsername != "" {
		if err := ensureUser(ctx, repos.UserRepo, svc.User, newUser{
			Username: serveAdminUsername,
			Password: serveAdminPassword,
			Name:     serveAdminUsername,
			Role:     domain.RolePlanning,
		}, logger); err != nil {
			return err
		}
	}

	router, err := handlers.NewRouter(cfg, svc, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("addr", server.Addr), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		logger.Info("Shutting down server...", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownWait)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	// detached notifications still hold the transport
	if s, ok := svc.Workflow.(shutdowner); ok {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Pending notifications did not finish", slog.String("error", err.Error()))
		}
	}

	logger.Info("Server exiting")
	return nil
}
