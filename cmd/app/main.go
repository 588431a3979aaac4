package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

//	@title		Dispatch API
//	@version	1.0
//	@BasePath	/api/v1

func main() {
	if err := run(); err != nil {
		slog.Error("dispatch stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gorm_postgres.Open(config.DB.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		return err
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("release brokers", "error", err)
		}
	}()

	router, err := app.CreateRouter()
	if err != nil {
		return err
	}
	backgroundJobs, err := app.CreateJobs()
	if err != nil {
		return err
	}
	manager := jobs.NewJobManager(logger, backgroundJobs...)

	app.RunBackground(ctx)
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", config.HTTP.Port)
		if err := router.Start("0.0.0.0:" + config.HTTP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()
	// Streams are hijacked connections that Shutdown does not wait for; closing the hub ends them.
	app.Hub().Close()
	return router.Shutdown(shutdownCtx)
}
