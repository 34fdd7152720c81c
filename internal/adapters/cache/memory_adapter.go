package cache

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/medassist/docfinder/internal/domain/providers"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter implements CacheProvider with an in-process map. It is the
// fallback when no Redis address is configured; conversation transcripts
// then live only as long as the process.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter() providers.CacheProvider {
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return entry.value, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(time.Duration(expirationSeconds) * time.Second),
	}
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.entries, key)
	return nil
}

// DeletePattern removes all keys matching a glob pattern
func (a *MemoryAdapter) DeletePattern(ctx context.Context, pattern string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key := range a.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(a.entries, key)
		}
	}
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}
