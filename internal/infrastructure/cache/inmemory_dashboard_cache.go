package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	appreport "github.com/retail-inventory/backend/internal/application/report"
	"github.com/retail-inventory/backend/internal/domain/report"
)

type statsEntry struct {
	stats     report.DashboardStats
	expiresAt time.Time
}

// InMemoryDashboardCache keeps dashboard stats in process memory.
// It is suitable for single-instance deployments and tests.
type InMemoryDashboardCache struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]statsEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryDashboardCache creates the cache and starts a goroutine that
// evicts expired entries every cleanupInterval. Zero disables the sweep.
func NewInMemoryDashboardCache(cleanupInterval time.Duration) *InMemoryDashboardCache {
	c := &InMemoryDashboardCache{
		entries:  make(map[uuid.UUID]statsEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		c.wg.Add(1)
		go c.cleanupLoop(cleanupInterval)
	}
	return c
}

// Get returns a copy of the cached stats, or nil when absent or expired
func (c *InMemoryDashboardCache) Get(_ context.Context, tenantID uuid.UUID) (*report.DashboardStats, error) {
	c.mu.RLock()
	e, ok := c.entries[tenantID]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, nil
	}
	stats := e.stats
	stats.Monthly = append([]report.MonthlyMovement(nil), e.stats.Monthly...)
	return &stats, nil
}

// Set stores a copy of stats for ttl
func (c *InMemoryDashboardCache) Set(_ context.Context, tenantID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error {
	if stats == nil || ttl <= 0 {
		return nil
	}
	copied := *stats
	copied.Monthly = append([]report.MonthlyMovement(nil), stats.Monthly...)

	c.mu.Lock()
	c.entries[tenantID] = statsEntry{stats: copied, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the tenant's entry
func (c *InMemoryDashboardCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, tenantID)
	c.mu.Unlock()
	return nil
}

// Size returns the number of entries, including expired ones not yet swept
func (c *InMemoryDashboardCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryDashboardCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemoryDashboardCache) evictExpired() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

// Close stops the cleanup goroutine
func (c *InMemoryDashboardCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

var _ appreport.StatsCache = (*InMemoryDashboardCache)(nil)
