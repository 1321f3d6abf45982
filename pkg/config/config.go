package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `env:", prefix=SERVER_"`
	Redis     RedisConfig     `env:", prefix=REDIS_"`
	NATS      NATSConfig      `env:", prefix=NATS_"`
	Session   SessionConfig   `env:", prefix=SESSION_"`
	Stream    StreamConfig    `env:", prefix=STREAM_"`
	WebSocket WebSocketConfig `env:", prefix=WEBSOCKET_"`
	Security  SecurityConfig  `env:", prefix=SECURITY_"`
	Features  FeaturesConfig  `env:", prefix=FEATURES_"`
	Logging   LoggingConfig   `env:", prefix=LOG_"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0"`
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s"`
}

// RedisConfig holds Redis configuration for the memoization cache.
type RedisConfig struct {
	Host         string        `env:"HOST, default=localhost"`
	Port         int           `env:"PORT, default=6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB, default=0"`
	PoolSize     int           `env:"POOL_SIZE, default=10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS, default=5"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=3s"`
	TTL          time.Duration `env:"TTL, default=5s"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL           string        `env:"URL, default=nats://localhost:4222"`
	MaxReconnect  int           `env:"MAX_RECONNECT, default=10"`
	ReconnectWait time.Duration `env:"RECONNECT_WAIT, default=2s"`
	DrainTimeout  time.Duration `env:"DRAIN_TIMEOUT, default=30s"`
}

// SessionConfig pins the simulated trading session. The simulated date is
// hardcoded to a single calendar day and is always treated as a trading day;
// the real local time of day is mapped onto the 9:30-16:00 window.
type SessionConfig struct {
	SimulatedDate string `env:"SIMULATED_DATE, default=2024-06-14"`
	Timezone      string `env:"TIMEZONE, default=Local"`
}

// StreamConfig holds live streaming configuration.
type StreamConfig struct {
	QuoteInterval time.Duration `env:"QUOTE_INTERVAL, default=1s"`
	// BarSchedule is a cron spec with a seconds field; the default fires at
	// second 0 of every minute to publish the just-completed bar.
	BarSchedule string `env:"BAR_SCHEDULE, default=0 * * * * *"`
}

// WebSocketConfig holds WebSocket hub configuration.
type WebSocketConfig struct {
	ReadBufferSize  int           `env:"READ_BUFFER_SIZE, default=1024"`
	WriteBufferSize int           `env:"WRITE_BUFFER_SIZE, default=1024"`
	PingInterval    time.Duration `env:"PING_INTERVAL, default=30s"`
	PongTimeout     time.Duration `env:"PONG_TIMEOUT, default=60s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT, default=10s"`
	MaxClients      int           `env:"MAX_CLIENTS, default=1000"`
}

// SecurityConfig holds security configuration.
type SecurityConfig struct {
	CORSEnabled bool     `env:"CORS_ENABLED, default=true"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	CORSMethods []string `env:"CORS_METHODS, default=GET,POST,OPTIONS"`
	CORSHeaders []string `env:"CORS_HEADERS, default=*"`
}

// FeaturesConfig holds feature flags.
type FeaturesConfig struct {
	StreamingEnabled bool `env:"STREAMING_ENABLED, default=true"`
	CacheEnabled     bool `env:"CACHE_ENABLED, default=false"`
	WebSocketEnabled bool `env:"WEBSOCKET_ENABLED, default=true"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=json"`
	Output string `env:"OUTPUT, default=stdout"`
}

// Load loads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	ctx := context.Background()
	var cfg Config

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.Parse("2006-01-02", c.Session.SimulatedDate); err != nil {
		return fmt.Errorf("invalid simulated date %q: %w", c.Session.SimulatedDate, err)
	}

	if c.Features.StreamingEnabled && c.NATS.URL == "" {
		return fmt.Errorf("NATS URL is required when streaming is enabled")
	}

	if c.Features.CacheEnabled && c.Redis.Host == "" {
		return fmt.Errorf("Redis host is required when caching is enabled")
	}

	if c.Stream.QuoteInterval <= 0 {
		return fmt.Errorf("invalid quote interval: %s", c.Stream.QuoteInterval)
	}

	return nil
}

// GetRedisAddr returns the Redis address.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP server address.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
