// Package ai contains adapters for the embedding collaborator.
package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"log/slog"
)

// cachedVectors is one cached embedding matrix.
type cachedVectors struct {
	vectors     [][]float32
	timestamp   time.Time
	accessCount int
}

// EmbedCache is a bounded in-memory cache of embedding matrices keyed by role
// and chunk content. Satisfies match.EmbedCache.
type EmbedCache struct {
	mu        sync.RWMutex
	cache     map[string]*cachedVectors
	maxSize   int
	hitCount  int64
	missCount int64
}

// NewEmbedCache creates a cache holding at most maxSize matrices.
func NewEmbedCache(maxSize int) *EmbedCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &EmbedCache{
		cache:   make(map[string]*cachedVectors),
		maxSize: maxSize,
	}
}

// cacheKey hashes role plus the chunk sequence. The role prefix keeps resume
// and JD entries distinct even for identical content.
func cacheKey(role string, texts []string) string {
	h := sha256.New()
	h.Write([]byte(role))
	for _, t := range texts {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached matrix if present.
func (c *EmbedCache) Get(role string, texts []string) ([][]float32, bool) {
	key := cacheKey(role, texts)

	c.mu.RLock()
	cached, exists := c.cache[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.missCount++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	cached.accessCount++
	c.hitCount++
	c.mu.Unlock()

	slog.Debug("embed cache hit",
		slog.String("key", key[:16]+"..."),
		slog.Int("access_count", cached.accessCount),
		slog.Duration("age", time.Since(cached.timestamp)))

	return cached.vectors, true
}

// Set stores a matrix, evicting the least used entry when full.
func (c *EmbedCache) Set(role string, texts []string, vecs [][]float32) {
	key := cacheKey(role, texts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) >= c.maxSize {
		c.evictLeastUsed()
	}

	c.cache[key] = &cachedVectors{
		vectors:     vecs,
		timestamp:   time.Now(),
		accessCount: 1,
	}

	slog.Debug("embed cache set",
		slog.String("key", key[:16]+"..."),
		slog.Int("vectors", len(vecs)))
}

// evictLeastUsed removes the entry with the lowest access count, breaking ties
// by age. Caller must hold the write lock.
func (c *EmbedCache) evictLeastUsed() {
	if len(c.cache) == 0 {
		return
	}

	var oldestKey string
	var oldestTime time.Time
	var lowestAccessCount int

	for key, cached := range c.cache {
		if oldestKey == "" ||
			cached.accessCount < lowestAccessCount ||
			(cached.accessCount == lowestAccessCount && cached.timestamp.Before(oldestTime)) {
			oldestKey = key
			oldestTime = cached.timestamp
			lowestAccessCount = cached.accessCount
		}
	}

	if oldestKey != "" {
		delete(c.cache, oldestKey)
		slog.Debug("evicted least used embed cache entry",
			slog.String("key", oldestKey[:16]+"..."),
			slog.Int("access_count", lowestAccessCount),
			slog.Duration("age", time.Since(oldestTime)))
	}
}

// Stats returns cache statistics.
func (c *EmbedCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totalRequests := c.hitCount + c.missCount
	hitRate := 0.0
	if totalRequests > 0 {
		hitRate = float64(c.hitCount) / float64(totalRequests)
	}

	return map[string]interface{}{
		"cache_size":     len(c.cache),
		"max_size":       c.maxSize,
		"hit_count":      c.hitCount,
		"miss_count":     c.missCount,
		"total_requests": totalRequests,
		"hit_rate":       hitRate,
	}
}

// Clear removes all cached entries.
func (c *EmbedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*cachedVectors)
	c.hitCount = 0
	c.missCount = 0
}
