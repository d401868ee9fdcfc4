package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appreport "github.com/retail-inventory/backend/internal/application/report"
	"github.com/retail-inventory/backend/internal/domain/report"
)

const dashboardKeyPrefix = "dashboard:stats:"

// RedisDashboardCache stores dashboard stats as JSON in Redis so every
// instance sees the same cached figures
type RedisDashboardCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDashboardCache creates a cache on an existing Redis client
func NewRedisDashboardCache(client *redis.Client, keyPrefix string) *RedisDashboardCache {
	if keyPrefix == "" {
		keyPrefix = dashboardKeyPrefix
	}
	return &RedisDashboardCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisDashboardCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Get returns the cached stats, or nil on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, tenantID uuid.UUID) (*report.DashboardStats, error) {
	raw, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	var stats report.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard cache: %w", err)
	}
	return &stats, nil
}

// Set stores stats for ttl
func (c *RedisDashboardCache) Set(ctx context.Context, tenantID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard stats: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// Invalidate drops the tenant's cached stats
func (c *RedisDashboardCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

var _ appreport.StatsCache = (*RedisDashboardCache)(nil)
