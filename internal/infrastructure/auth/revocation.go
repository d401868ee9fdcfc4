package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers logged-out tokens until they would have expired
type RevocationStore interface {
	// Revoke marks a token's JTI as revoked for ttl
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationStore implements RevocationStore using Redis
type RedisRevocationStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevocationStore creates a revocation store on an existing Redis client
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{
		client:    client,
		keyPrefix: "token:revoked:",
	}
}

// Revoke stores the JTI with a TTL
func (s *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks if a JTI has been revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// InMemoryRevocationStore keeps revocations in process memory.
// Not shared between instances.
type InMemoryRevocationStore struct {
	mu        sync.Mutex
	revoked   map[string]time.Time // JTI -> expiration time
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRevocationStore creates an empty store and starts a goroutine
// that drops expired JTIs every cleanupInterval. Zero disables the sweep.
func NewInMemoryRevocationStore(cleanupInterval time.Duration) *InMemoryRevocationStore {
	s := &InMemoryRevocationStore{
		revoked:  make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// Revoke records the JTI until now+ttl
func (s *InMemoryRevocationStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = s.now().Add(ttl)
	return nil
}

// IsRevoked reports whether the JTI is revoked; expired entries are dropped
func (s *InMemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiration, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if s.now().After(expiration) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

// Size returns the number of tracked JTIs, including expired ones not yet swept
func (s *InMemoryRevocationStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}

func (s *InMemoryRevocationStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *InMemoryRevocationStore) evictExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, expiration := range s.revoked {
		if now.After(expiration) {
			delete(s.revoked, jti)
		}
	}
}

// Close stops the cleanup goroutine
func (s *InMemoryRevocationStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

var _ RevocationStore = (*InMemoryRevocationStore)(nil)
