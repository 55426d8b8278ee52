package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightsmap/core/internal/app"
	"github.com/lightsmap/core/internal/config"
	"github.com/lightsmap/core/internal/database"
	"github.com/lightsmap/core/internal/pkg/logging"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type globalOptions struct {
	configPath string
	envFiles   []string
}

// loadConfig reads .env files, the optional YAML file and the environment,
// then builds the logger. Configuration failures are logged under a
// dedicated message before being returned.
func loadConfig(opts globalOptions) (*config.AppConfig, *zap.Logger, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewZapLogger(logging.Options{
		Level:       cfg.LogLevel,
		Development: cfg.IsDev(),
		Dir:         cfg.LogDir,
	})
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("file log pipeline unavailable, falling back to stdout", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration error", zap.Error(err))
		_ = logger.Sync()
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(ctx context.Context, opts globalOptions) error {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	application, err := app.New(logger, cfg)
	if err != nil {
		if errors.Is(err, config.ErrMissingSetting) {
			logger.Error("configuration error", zap.Error(err))
		} else {
			logger.Error("failed to initialize app", zap.Error(err))
		}
		return err
	}

	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			_ = application.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Warn("resource cleanup incomplete", zap.Error(err))
	}
	logger.Info("server exited")
	return nil
}

func runMigrate(opts globalOptions) error {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("running migrations", zap.String("dialect", database.DialectName(cfg.DatabaseURL)))
	if err := database.EnsureSchema(cfg); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}
	logger.Info("migrations complete")
	return nil
}
