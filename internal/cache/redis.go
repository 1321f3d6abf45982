// Package cache memoizes derived quotes and series in Redis. Every cached
// value is a pure function of (symbol, timeframe, day, minute), so a cache
// hit is byte-identical to recomputation and entries can expire freely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/models"
)

// RedisClient handles Redis caching operations.
type RedisClient struct {
	client *redis.Client
	logger *logrus.Entry
	ttl    time.Duration
}

// NewRedisClient creates a new Redis client.
func NewRedisClient(cfg *config.RedisConfig, logger *logrus.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &RedisClient{
		client: client,
		logger: logger.WithField("component", "redis"),
		ttl:    ttl,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

// Health checks Redis health.
func (rc *RedisClient) Health(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetQuote caches the current quote for a symbol.
func (rc *RedisClient) SetQuote(ctx context.Context, quote *models.Quote) error {
	key := fmt.Sprintf("quote:%s", quote.Symbol)

	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return rc.client.Set(ctx, key, data, rc.ttl).Err()
}

// GetQuote returns the cached quote for a symbol, or nil on a miss.
func (rc *RedisClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	key := fmt.Sprintf("quote:%s", symbol)

	data, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	var quote models.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &quote, nil
}

// seriesKey identifies a memoized series. Day and minute pin the exact
// simulated instant so a stale entry can never be confused with a fresh one.
func seriesKey(symbol string, tf models.Timeframe, day, minute int) string {
	return fmt.Sprintf("series:%s:%s:%d:%d", symbol, tf, day, minute)
}

// SetSeries memoizes an assembled series.
func (rc *RedisClient) SetSeries(ctx context.Context, series *models.Series, day, minute int) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal series: %w", err)
	}
	return rc.client.Set(ctx, seriesKey(series.Symbol, series.Timeframe, day, minute), data, rc.ttl).Err()
}

// GetSeries returns a memoized series, or nil on a miss.
func (rc *RedisClient) GetSeries(ctx context.Context, symbol string, tf models.Timeframe, day, minute int) (*models.Series, error) {
	data, err := rc.client.Get(ctx, seriesKey(symbol, tf, day, minute)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	var series models.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("failed to unmarshal series: %w", err)
	}
	return &series, nil
}
