package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/orris-inc/leadrouter/internal/application/assignment"
	"github.com/orris-inc/leadrouter/internal/domain/shared/events"
	"github.com/orris-inc/leadrouter/internal/infrastructure/broadcaster"
	"github.com/orris-inc/leadrouter/internal/infrastructure/config"
	"github.com/orris-inc/leadrouter/internal/infrastructure/database"
	"github.com/orris-inc/leadrouter/internal/infrastructure/migration"
	"github.com/orris-inc/leadrouter/internal/infrastructure/repository"
	httpRouter "github.com/orris-inc/leadrouter/internal/interfaces/http"
	leadHandler "github.com/orris-inc/leadrouter/internal/interfaces/http/handlers/lead"
	"github.com/orris-inc/leadrouter/internal/interfaces/http/middleware"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	sharedDB "github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the lead routing HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env, "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		logger.Fatal("failed to initialize business timezone", "error", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env); err != nil {
		logger.Fatal("migration handling failed", "error", err)
	}

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		logger.Fatal("failed to start event dispatcher", "error", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			logger.Error("failed to stop event dispatcher", "error", err)
		}
	}()
	logger.Info("event dispatcher started")

	redisClient := broadcaster.NewRedisClient(&cfg.Redis, logger.NewLogger())
	assignmentBroadcaster := broadcaster.NewAssignmentBroadcaster(redisClient, cfg.Broadcaster.Channel, logger.NewLogger().With("component", "broadcaster"))
	if err := eventDispatcher.Subscribe("assignment.assigned", assignmentBroadcaster); err != nil {
		logger.Fatal("failed to subscribe assignment broadcaster", "error", err)
	}

	db := database.Get()
	leadRepo := repository.NewLeadRepository(db, logger.NewLogger())
	assignmentRepo := repository.NewAssignmentRepository(db, logger.NewLogger())
	callerRepo := repository.NewCallerRepository(db, logger.NewLogger())
	fairnessStore := repository.NewFairnessStore(db, logger.NewLogger())
	dailyCounterStore := repository.NewDailyCounterStore(db, logger.NewLogger())
	txManager := sharedDB.NewTransactionManager(db)

	engine := assignment.NewEngine(
		leadRepo,
		assignmentRepo,
		callerRepo,
		fairnessStore,
		dailyCounterStore,
		txManager,
		eventDispatcher,
		clockwork.NewRealClock(),
		logger.NewLogger().With("component", "assignment.engine"),
	)

	handler := leadHandler.NewHandler(engine, logger.NewLogger().With("component", "http.lead"))
	ingressSecret := middleware.NewIngressSecretMiddleware(cfg.Server.IngressSecret, logger.NewLogger().With("component", "middleware.ingress"))
	router := httpRouter.NewRouter(handler, ingressSecret, logger.NewLogger())

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment string) error {
	if skipMigrationCheck {
		logger.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		logger.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed successfully")
		return nil
	}

	logger.Info("checking migration status")

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		logger.Warn("failed to get migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGooseStrategy(scriptsPath)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
		} else {
			logger.Info("current migration version", "version", version)
		}
	}

	logger.Info("migration check completed")

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
