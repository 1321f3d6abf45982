// Package streamer recomputes and publishes live simulator output: quotes
// every second and completed minute bars at each minute boundary. The
// streamer holds no derived state of its own; killing and restarting it at
// any instant reproduces the exact same stream.
package streamer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/synthfeed/internal/cache"
	"github.com/synthfeed/internal/messaging"
	"github.com/synthfeed/internal/simulator"
	"github.com/synthfeed/internal/symbols"
	"github.com/synthfeed/pkg/config"
)

// Streamer drives periodic quote and bar publication.
type Streamer struct {
	cfg     *config.StreamConfig
	symbols *symbols.Manager
	nats    *messaging.NATSClient
	cache   *cache.RedisClient // nil when caching is disabled
	market  *simulator.MarketClock
	logger  *logrus.Entry

	cron *cron.Cron

	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a new streamer.
func New(
	cfg *config.StreamConfig,
	symbolsMgr *symbols.Manager,
	natsClient *messaging.NATSClient,
	redisCache *cache.RedisClient,
	market *simulator.MarketClock,
	logger *logrus.Logger,
) *Streamer {
	return &Streamer{
		cfg:     cfg,
		symbols: symbolsMgr,
		nats:    natsClient,
		cache:   redisCache,
		market:  market,
		logger:  logger.WithField("component", "streamer"),
		done:    make(chan struct{}),
	}
}

// Start starts the quote loop and the minute-bar schedule.
func (s *Streamer) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("streamer already running")
	}

	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddFunc(s.cfg.BarSchedule, s.publishMinuteBars); err != nil {
		return fmt.Errorf("invalid bar schedule %q: %w", s.cfg.BarSchedule, err)
	}
	s.cron.Start()

	s.running = true
	s.wg.Add(1)
	go s.quoteLoop(ctx)

	s.logger.WithField("interval", s.cfg.QuoteInterval).Info("Streamer started")
	return nil
}

// Stop stops the streamer.
func (s *Streamer) Stop() error {
	if !s.running {
		return nil
	}

	close(s.done)
	cronCtx := s.cron.Stop()
	<-cronCtx.Done()
	s.wg.Wait()
	s.running = false

	s.logger.Info("Streamer stopped")
	return nil
}

// quoteLoop recomputes every symbol's quote on each tick.
func (s *Streamer) quoteLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.QuoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.publishQuotes(ctx)
		}
	}
}

// publishQuotes derives and publishes the current quote for each symbol.
func (s *Streamer) publishQuotes(ctx context.Context) {
	state := s.market.State()
	now := s.market.Now()

	for _, info := range s.symbols.List() {
		quote, err := simulator.BuildQuote(info.Symbol, info.BasePrice, state, now)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", info.Symbol).Error("Failed to build quote")
			continue
		}

		if err := s.nats.PublishQuote(&quote); err != nil {
			s.logger.WithError(err).WithField("symbol", info.Symbol).Error("Failed to publish quote")
			continue
		}

		if s.cache != nil {
			if err := s.cache.SetQuote(ctx, &quote); err != nil {
				s.logger.WithError(err).WithField("symbol", info.Symbol).Warn("Failed to cache quote")
			}
		}
	}
}

// publishMinuteBars publishes the bar for the minute that just completed.
func (s *Streamer) publishMinuteBars() {
	state := s.market.State()

	minute := simulator.CurrentMinute(state) - 1
	if minute < 0 || !state.IsOpen {
		return
	}

	today := state.TradingDay
	for _, info := range s.symbols.List() {
		bar := simulator.MinuteBar(info.Symbol, info.BasePrice, today, today, minute)
		if err := s.nats.PublishBar(&bar); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"symbol": info.Symbol,
				"minute": minute,
			}).Error("Failed to publish bar")
		}
	}

	s.logger.WithField("minute", minute).Debug("Minute bars published")
}
