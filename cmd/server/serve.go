package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brokerage/rms-api/internal/config"
	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/events"
	"github.com/brokerage/rms-api/internal/metrics"
	"github.com/brokerage/rms-api/internal/router"
	"github.com/brokerage/rms-api/internal/service"
	"github.com/brokerage/rms-api/internal/workflow"
)

func runServe(configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger.Info("Starting RMS API Server...")

	db, err := database.Initialize(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database schema is up to date")
	}

	publisher := events.New(cfg.Events, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close event publisher")
		}
	}()

	deps := workflow.Deps{
		DB:        db,
		Publisher: publisher,
		Logger:    logger,
		Config:    workflowConfig(cfg.Workflow),
	}

	opts := router.Options{
		Logger: logger,
		Health: db,
	}
	if cfg.Metrics.Enabled {
		workflowMetrics := metrics.New()
		if err := workflowMetrics.WatchDB(db.DB.DB, cfg.Database.Type); err != nil {
			logger.WithError(err).Warn("Failed to export database pool metrics")
		}
		deps.Recorder = workflowMetrics
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = workflowMetrics.Handler()
	}

	registry := service.NewRegistry(deps)
	logger.Info("Services initialized successfully")

	ginRouter := router.SetupRouter(registry, opts)

	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited gracefully")
	return nil
}

func workflowConfig(cfg config.WorkflowConfig) workflow.Config {
	return workflow.Config{
		PendingUpdatePolicy:    workflow.PendingUpdatePolicy(cfg.PendingUpdatePolicy),
		AllowSelfAuthorization: cfg.AllowSelfAuthorization,
		Limits: workflow.Limits{
			DefaultPageSize:     cfg.DefaultPageSize,
			MaxPageSize:         cfg.MaxPageSize,
			MaxSearchTermLength: cfg.MaxSearchTermLength,
		},
	}
}
