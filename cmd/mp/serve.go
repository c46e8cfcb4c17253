package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/application/service"
	"github.com/jeneeldumasia/mp/internal/presentation/http/handler"
	"github.com/jeneeldumasia/mp/internal/presentation/http/routes"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger(cfg, true)
	defer log.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.UsesDefaultJWTSecret() {
		log.Warn("JWT_SECRET is not set, settings unlock tokens use the default key")
	}

	app, err := newApplication(cfg, log)
	if err != nil {
		log.Error("failed to start", "error", err)
		return err
	}
	defer app.Close()

	scheduler := service.NewScheduler(app.reports, app.idempotencyRepo, cfg.Report, log)
	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		return err
	}
	defer scheduler.Stop()

	limiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer limiter.Stop()

	router := routes.Setup(&routes.Handlers{
		Bill:     handler.NewBillHandler(app.billing),
		Sales:    handler.NewSalesHandler(app.reports, app.printing),
		Report:   handler.NewReportHandler(app.reports),
		Settings: handler.NewSettingsHandler(app.settings),
		Menu:     handler.NewMenuHandler(app.menu),
		Printer:  handler.NewPrinterHandler(app.printing),
	}, &routes.Deps{
		Cfg:             cfg,
		Authorizer:      app.settings,
		IdempotencyRepo: app.idempotencyRepo,
		RateLimiter:     limiter,
		Log:             log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "name", cfg.App.Name, "port", port, "env", cfg.App.Env, "db_driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
