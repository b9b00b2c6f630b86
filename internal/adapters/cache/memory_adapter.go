package cache

import (
	"context"
	"sync"
	"time"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
)

type memoryEntry struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryAdapter is a process-wide CacheProvider. Entries expire lazily: an
// entry older than its TTL is evicted by the Get that finds it. There is no
// capacity bound and no background sweep.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryAdapter creates an empty in-memory cache.
func NewMemoryAdapter() *MemoryAdapter {
	return NewMemoryAdapterWithClock(time.Now)
}

// NewMemoryAdapterWithClock allows overriding the clock (used for tests).
func NewMemoryAdapterWithClock(now func() time.Time) *MemoryAdapter {
	if now == nil {
		now = time.Now
	}
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Get returns the entry if it is younger than its TTL.
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()
	if !ok {
		return nil, providers.ErrCacheMiss
	}

	if a.now().Sub(entry.storedAt) >= entry.ttl {
		a.mu.Lock()
		// Another writer may have refreshed the key meanwhile.
		if current, ok := a.entries[key]; ok && current.storedAt.Equal(entry.storedAt) {
			delete(a.entries, key)
		}
		a.mu.Unlock()
		return nil, providers.ErrCacheMiss
	}
	return entry.data, nil
}

// Set stores value, always overwriting.
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[key] = memoryEntry{
		data:     value,
		storedAt: a.now(),
		ttl:      time.Duration(expirationSeconds) * time.Second,
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

// Exists reports whether a live entry is stored under key.
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Get(ctx, key)
	return err == nil, nil
}

// Len returns the number of stored entries, including expired ones not yet read.
func (a *MemoryAdapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
