package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for memoized resources
	memoKeyPrefix = "memo:"

	// Interval for cleaning up stale key mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// Memo is a time-boxed memoization cache keyed by a logical resource name,
// with single-writer refresh-on-expiry semantics: when a key is missing or
// expired, exactly one caller runs the loader while others wait on the
// per-key mutex and then read the refreshed value.
//
// Values are stored as JSON in Redis so they survive process restarts and
// are shared across instances.
type Memo struct {
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-key mutex so only one refresh runs per resource
	keyMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewMemo creates a Memo cache.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewMemo(redisClient *redis.Client, log *logrus.Logger) *Memo {
	m := &Memo{
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupMutexMapLoop()

	return m
}

// Stop gracefully shuts down the cache.
// Safe to call multiple times.
func (m *Memo) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		m.wg.Wait()
		m.log.Debug("Memo cache stopped")
	}
}

// GetOrRefresh unmarshals the cached value for key into out. On a miss it
// runs loader, stores the result with the given TTL, and fills out from the
// fresh value. A Redis write failure is logged but not fatal; the loaded
// value is still served.
func (m *Memo) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, out interface{}, loader func(ctx context.Context) (interface{}, error)) error {
	redisKey := memoKeyPrefix + key

	if ok := m.tryGet(ctx, redisKey, out); ok {
		return nil
	}

	mt := m.keyMutex(key)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	// Another caller may have refreshed while we waited on the mutex.
	if ok := m.tryGet(ctx, redisKey, out); ok {
		return nil
	}

	value, err := loader(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", key, err)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cached value for %s: %w", key, err)
	}

	if err := m.redisClient.Set(ctx, redisKey, payload, ttl).Err(); err != nil {
		m.log.Warnf("Failed to store cached value for %s: %+v", key, err)
	}

	return json.Unmarshal(payload, out)
}

// Invalidate drops the cached value so the next read refreshes.
func (m *Memo) Invalidate(ctx context.Context, key string) error {
	if err := m.redisClient.Del(ctx, memoKeyPrefix+key).Err(); err != nil {
		m.log.Warnf("Failed to invalidate %s: %+v", key, err)
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	return nil
}

// tryGet reads and unmarshals the cached payload; a corrupt payload counts
// as a miss and will be overwritten by the refresh.
func (m *Memo) tryGet(ctx context.Context, redisKey string, out interface{}) bool {
	payload, err := m.redisClient.Get(ctx, redisKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			m.log.Warnf("Failed to read cache key %s: %+v", redisKey, err)
		}
		return false
	}

	if err := json.Unmarshal(payload, out); err != nil {
		m.log.Warnf("Corrupt cache payload at %s: %+v", redisKey, err)
		return false
	}

	return true
}

// keyMutex returns the mutex for a specific resource key
func (m *Memo) keyMutex(key string) *mutexWithTimestamp {
	mt, _ := m.keyMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (m *Memo) cleanupMutexMapLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety
func (m *Memo) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	m.keyMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		// TryLock first - if we can't get the lock, someone is using it.
		// lastUsed is re-checked inside the lock so a concurrent caller
		// can't lose its mutex.
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				m.keyMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		m.log.Debugf("Cleaned up %d stale cache mutexes", cleaned)
	}
}
