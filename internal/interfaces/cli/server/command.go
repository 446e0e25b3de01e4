package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/email"
	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	httpRouter "github.com/orris-inc/helpdesk/internal/interfaces/http"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the helpdesk HTTP API with the configuration for the given environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Migrate the database schema on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("HELPDESK_ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	logger.Info("starting server",
		"environment", env,
		"driver", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if autoMigrate {
		if env == constants.EnvProduction {
			logger.Warn("auto-migration is enabled in production")
		}
		manager := migration.NewManager(env, cfg.Database.Driver, log)
		if err := manager.Migrate(ctx, database.Get()); err != nil {
			logger.Fatal("auto-migration failed", "error", err)
		}
	}

	enforcer, err := permission.NewDefaultEnforcer(database.Get(), log)
	if err != nil {
		logger.Fatal("failed to initialize permission enforcer", "error", err)
	}

	limiter := newLimiter(ctx, cfg)

	router := httpRouter.NewRouter(httpRouter.Dependencies{
		DB:       database.Get(),
		Config:   cfg,
		Policy:   enforcer,
		Limiter:  limiter,
		Notifier: email.NewNotifier(&cfg.Email, cfg.Server.BaseURL, log),
		Ping:     database.Ping,
		Logger:   log,
	})
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
			"swagger", cfg.Server.EnableSwagger)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// newLimiter connects the Redis backed limiter. Without Redis the API runs
// unthrottled.
func newLimiter(ctx context.Context, cfg *config.Config) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled || !cfg.Redis.Enabled {
		logger.Info("rate limiting disabled")
		return nil
	}

	client, err := ratelimit.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "address", cfg.Redis.GetAddr(), "error", err)
		return nil
	}

	logger.Info("rate limiting enabled",
		"per_minute", cfg.RateLimit.RequestsPerMinute,
		"per_hour", cfg.RateLimit.RequestsPerHour)
	return ratelimit.NewRedisLimiter(client)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", gin.ReleaseMode:
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
