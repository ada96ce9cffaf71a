package insights

import (
	"sync"
	"time"
)

// cacheEntry holds a cached score and its expiration time.
type cacheEntry struct {
	score     *DailyScore
	expiresAt time.Time
}

// scoreCache is a thread-safe per-patient daily score cache with lazy
// expiration. Scores are derived, never authoritative, so a zero or
// negative TTL simply disables caching.
type scoreCache struct {
	entries map[string]*cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

func newScoreCache(ttl time.Duration) *scoreCache {
	return &scoreCache{entries: make(map[string]*cacheEntry), ttl: ttl}
}

func (c *scoreCache) get(patientID string, now time.Time) *DailyScore {
	if c.ttl <= 0 {
		return nil
	}
	c.mu.RLock()
	entry, ok := c.entries[patientID]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	if now.After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, patientID)
		c.mu.Unlock()
		return nil
	}
	return entry.score
}

func (c *scoreCache) set(patientID string, score *DailyScore, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[patientID] = &cacheEntry{score: score, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
}
