package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// AnalysisCache holds computed player analyses with a TTL. Entries are keyed
// on the session's at-bat sequence, so a stale entry can never be served for
// a session that has advanced; the TTL just bounds memory.
type AnalysisCache struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	sessionID string
	value     interface{}
	expiresAt time.Time
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{
		cache: make(map[string]*cacheEntry),
	}
}

// analysisCacheKey derives a deterministic key from the session, player, and
// the session's current at-bat sequence.
func analysisCacheKey(sessionID, playerID string, seq uint64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", sessionID, playerID, seq)))
	return hex.EncodeToString(hash[:])
}

// Get returns a live cached value.
func (c *AnalysisCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.cache[key]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set stores a value under the key, tagged with its session for targeted
// invalidation.
func (c *AnalysisCache) Set(key, sessionID string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = &cacheEntry{
		sessionID: sessionID,
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// InvalidateSession drops every entry belonging to one session. Also sweeps
// expired entries while it holds the lock.
func (c *AnalysisCache) InvalidateSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.cache {
		if entry.sessionID == sessionID || now.After(entry.expiresAt) {
			delete(c.cache, key)
		}
	}
}

// Clear drops everything.
func (c *AnalysisCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*cacheEntry)
}

// Size returns the number of retained entries, expired or not.
func (c *AnalysisCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
