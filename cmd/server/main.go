package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/appforge-io/appforge/internal/bootstrap"
	"github.com/appforge-io/appforge/internal/config"
	"github.com/appforge-io/appforge/internal/modules/handler"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/appforge-io/appforge/internal/router"
	"github.com/appforge-io/appforge/internal/telemetry"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inj := bootstrap.BuildContainer()
	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
		if _, err := telemetry.SetupTracing(cfg); err != nil {
			log.Warn("tracing setup failed", zap.Error(err))
		}
		if _, err := telemetry.SetupMetrics(cfg); err != nil {
			log.Warn("metrics setup failed", zap.Error(err))
		}
		if err := telemetry.InitPipelineMetrics(); err != nil {
			log.Warn("pipeline metrics init failed", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = telemetry.Shutdown(shutdownCtx)
			_ = telemetry.ShutdownMetrics(shutdownCtx)
		}()
	}

	r := router.NewRouter(router.RouterDeps{
		Config:            cfg,
		Log:               log,
		AuthService:       do.MustInvoke[service.AuthService](inj),
		AuthHandler:       do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler:    do.MustInvoke[*handler.ProjectHandler](inj),
		FileNodeHandler:   do.MustInvoke[*handler.FileNodeHandler](inj),
		ChatHandler:       do.MustInvoke[*handler.ChatHandler](inj),
		SuggestionHandler: do.MustInvoke[*handler.SuggestionHandler](inj),
		DeploymentHandler: do.MustInvoke[*handler.DeploymentHandler](inj),
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	worker := do.MustInvoke[*service.DeployWorker](inj)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return worker.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// A signal-driven shutdown surfaces as context.Canceled from the
	// worker; only unexpected errors are fatal.
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}
