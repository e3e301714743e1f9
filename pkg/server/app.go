package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/cache"
	pkgch "github.com/williamppmm/rvc-investment-analyzer/pkg/clickhouse"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/config"
	xhttp "github.com/williamppmm/rvc-investment-analyzer/pkg/http"
	pkgkafka "github.com/williamppmm/rvc-investment-analyzer/pkg/kafka"
	applogger "github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/queue"
)

// Resources are the infrastructure handles the app owns and must release on
// shutdown. All fields are optional.
type Resources struct {
	RefreshQueue    *queue.RedisQueue
	ClickHouse      *pkgch.Client
	Redis           *cache.RedisCache
	KafkaProducer   *pkgkafka.Producer
	Classifications repository.ClassificationStore
}

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	res        Resources
}

// New creates the application from its wired dependencies.
func New(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, res Resources) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		handler: handler,
		res:     res,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(a.logger, time.Second),
	)

	if a.res.RefreshQueue != nil {
		if err := a.res.RefreshQueue.Start(); err != nil {
			a.logger.Error("refresh queue start failed", applogger.Error(err))
			return err
		}
		a.logger.Info("refresh queue started")
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start failed", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown releases resources in reverse dependency order.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.res.RefreshQueue != nil {
		if err := a.res.RefreshQueue.Stop(ctx); err != nil {
			a.logger.Warn("refresh queue stop error", applogger.Error(err))
		}
	}

	if a.res.KafkaProducer != nil {
		if err := a.res.KafkaProducer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.res.ClickHouse != nil {
		if err := a.res.ClickHouse.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.res.Classifications != nil {
		if err := a.res.Classifications.Close(); err != nil {
			a.logger.Warn("classification store close error", applogger.Error(err))
		}
	}

	if a.res.Redis != nil {
		if err := a.res.Redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
