package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"DiviHub/internal/usecase"
	"DiviHub/pkg/config"
	xhttp "DiviHub/pkg/http"
	applogger "DiviHub/pkg/logger"
)

// App encapsulates the entire application lifecycle: the HTTP server
// and the scheduled eviction sweep over the sample window.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	mon        *usecase.Monitoring
	httpServer *xhttp.Server
	scheduler  *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, mon *usecase.Monitoring) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		mon:     mon,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	// Eviction also runs inline on every record; the sweep keeps the
	// window bounded through quiet periods with no ingestion.
	a.scheduler = cron.New()
	spec := "@every " + a.cfg.Monitoring.EvictionInterval.String()
	if _, err := a.scheduler.AddFunc(spec, func() {
		if evicted := a.mon.Evict(); evicted > 0 {
			a.logger.Debug("eviction sweep", applogger.Int("evicted", evicted))
		}
	}); err != nil {
		return err
	}
	a.scheduler.Start()
	a.logger.Info("eviction sweep scheduled", applogger.String("interval", a.cfg.Monitoring.EvictionInterval.String()))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	stopCtx := a.scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
