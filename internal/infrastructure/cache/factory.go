package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appreport "github.com/retail-inventory/backend/internal/application/report"
	"github.com/retail-inventory/backend/internal/infrastructure/auth"
	"github.com/retail-inventory/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory builds the Redis-backed stores, or in-memory stand-ins when Redis
// is disabled or unreachable
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	client                *redis.Client
	closers               []func() error
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Connect opens the Redis client when Redis is enabled. A failure is only
// returned when in-memory fallback is disabled.
func (f *Factory) Connect(ctx context.Context) error {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory caches")
		return nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory caches. "+
			"Cached state is not shared between instances.",
			zap.Error(err),
		)
		return nil
	}

	f.logger.Info("Connected to Redis", zap.String("addr", f.redisConfig.Addr()))
	f.client = client
	f.closers = append(f.closers, client.Close)
	return nil
}

// Client returns the Redis client, or nil when running in-memory
func (f *Factory) Client() *redis.Client {
	return f.client
}

// DashboardCache returns the dashboard stats cache
func (f *Factory) DashboardCache() appreport.StatsCache {
	if f.client != nil {
		return NewRedisDashboardCache(f.client, dashboardKeyPrefix)
	}
	c := NewInMemoryDashboardCache(time.Minute)
	f.closers = append(f.closers, c.Close)
	return c
}

// RevocationStore returns the store for logged-out token IDs
func (f *Factory) RevocationStore() auth.RevocationStore {
	if f.client != nil {
		return auth.NewRedisRevocationStore(f.client)
	}
	s := auth.NewInMemoryRevocationStore(time.Minute)
	f.closers = append(f.closers, s.Close)
	return s
}

// Close releases the Redis client and stops in-memory sweepers
func (f *Factory) Close() error {
	var firstErr error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}
