// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/auth"
	authpg "github.com/tasknest/tasknest/internal/auth/postgres"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/httpapi"
	"github.com/tasknest/tasknest/internal/logging"
	"github.com/tasknest/tasknest/internal/observability"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/tasks"
	taskspg "github.com/tasknest/tasknest/internal/tasks/postgres"
	"github.com/tasknest/tasknest/internal/validate"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the TaskNest API server",
		Long: `Start the API server along with the observability endpoints.
Configuration comes from flags, an optional config file, and environment
variables for secrets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, autoMigrate, cmd)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "apply pending database migrations before serving")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, autoMigrate bool, cmd *cobra.Command) error {
	logging.SetDefault("tasknest", version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	logger := slog.Default()

	if autoMigrate {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logger.Info("connected to database")

	// Wire the domain services.
	hasher, err := auth.NewBcryptHasher(cfg.PasswordPepper)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}
	tokenSvc, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	userRepo := authpg.NewUserRepository(pool)
	listRepo := taskspg.NewTaskListRepository(pool)
	taskRepo := taskspg.NewTaskRepository(pool)

	authSvc, err := auth.NewService(userRepo, hasher, tokenSvc)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	listSvc, err := tasks.NewListService(listRepo, userRepo)
	if err != nil {
		return fmt.Errorf("failed to create list service: %w", err)
	}
	taskSvc, err := tasks.NewTaskService(taskRepo, listRepo)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	validator, err := validate.New()
	if err != nil {
		return fmt.Errorf("failed to compile request schemas: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start observability server if configured.
	var obsServer *observability.Server
	if cfg.Server.ObservabilityAddr != "" {
		obsServer = observability.NewServer(cfg.Server.ObservabilityAddr, func() bool { return true })
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
	}

	var metrics *observability.Metrics
	if obsServer != nil {
		metrics = obsServer.Metrics()
	}

	apiServer, err := httpapi.NewServer(httpapi.Config{
		Addr:      cfg.Server.Addr,
		Auth:      authSvc,
		Lists:     listSvc,
		Tasks:     taskSvc,
		Validator: validator,
		Metrics:   metrics,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create api server: %w", err)
	}

	apiErrChan, err := apiServer.Start()
	if err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	go monitorServerErrors(ctx, cancel, apiErrChan, "api")

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("TaskNest server started")
	logger.Info("server ready",
		"addr", apiServer.Addr(),
		"observability_addr", cfg.Server.ObservabilityAddr,
	)

	// Wait for shutdown signal or server failure
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels the run context when a server's error
// channel reports a failure.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, name string) {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}
