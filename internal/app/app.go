// Package app wires the application components together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/synthfeed/internal/api"
	"github.com/synthfeed/internal/cache"
	"github.com/synthfeed/internal/messaging"
	"github.com/synthfeed/internal/simulator"
	"github.com/synthfeed/internal/streamer"
	"github.com/synthfeed/internal/symbols"
	ws "github.com/synthfeed/internal/websocket"
	"github.com/synthfeed/pkg/config"
)

// App represents the main application.
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
	ctx    context.Context
	cancel context.CancelFunc

	// Core components
	symbolsMgr *symbols.Manager
	market     *simulator.MarketClock
	redisCache *cache.RedisClient
	natsClient *messaging.NATSClient

	// Services
	quoteStreamer *streamer.Streamer
	wsHub         *ws.Hub
	apiServer     *api.Server
}

// New creates a new application instance.
func New(cfg *config.Config, logger *logrus.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Initialize initializes all application components.
func (a *App) Initialize() error {
	a.symbolsMgr = symbols.NewManager(a.logger)

	market, err := simulator.NewMarketClock(&a.cfg.Session, simulator.SystemClock())
	if err != nil {
		return fmt.Errorf("failed to initialize market clock: %w", err)
	}
	a.market = market

	if a.cfg.Features.CacheEnabled {
		redisCache, err := cache.NewRedisClient(&a.cfg.Redis, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		a.redisCache = redisCache
	}

	if a.cfg.Features.StreamingEnabled {
		natsClient, err := messaging.NewNATSClient(&a.cfg.NATS, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS: %w", err)
		}
		a.natsClient = natsClient

		a.quoteStreamer = streamer.New(
			&a.cfg.Stream,
			a.symbolsMgr,
			a.natsClient,
			a.redisCache,
			a.market,
			a.logger,
		)

		if a.cfg.Features.WebSocketEnabled {
			a.wsHub = ws.NewHub(&a.cfg.WebSocket, a.natsClient, a.logger)
		}
	}

	a.apiServer = api.NewServer(a.cfg, a.logger, a.symbolsMgr, a.market, a.redisCache, a.wsHub)

	a.logger.WithFields(logrus.Fields{
		"symbols":   a.symbolsMgr.Count(),
		"day":       a.market.Day(),
		"streaming": a.cfg.Features.StreamingEnabled,
		"cache":     a.cfg.Features.CacheEnabled,
	}).Info("Application initialized")

	return nil
}

// Start starts all application components.
func (a *App) Start() error {
	if a.wsHub != nil {
		if err := a.wsHub.Start(a.ctx); err != nil {
			return fmt.Errorf("failed to start websocket hub: %w", err)
		}
	}

	if a.quoteStreamer != nil {
		if err := a.quoteStreamer.Start(a.ctx); err != nil {
			return fmt.Errorf("failed to start streamer: %w", err)
		}
	}

	if err := a.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	return nil
}

// Stop stops all application components in reverse order.
func (a *App) Stop() error {
	a.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("API server shutdown error")
	}

	if a.quoteStreamer != nil {
		if err := a.quoteStreamer.Stop(); err != nil {
			a.logger.WithError(err).Error("Streamer shutdown error")
		}
	}

	if a.wsHub != nil {
		if err := a.wsHub.Stop(); err != nil {
			a.logger.WithError(err).Error("WebSocket hub shutdown error")
		}
	}

	if a.natsClient != nil {
		a.natsClient.Close()
	}
	if a.redisCache != nil {
		a.redisCache.Close()
	}

	return nil
}
