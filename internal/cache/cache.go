// Package cache provides the advisory result cache that short-circuits
// identical generation requests. It is purely an optimization: every backend
// or decode failure degrades to a miss and is never surfaced to callers.
package cache

import (
	"context"
	"sync"
	"time"

	"adforge/internal/creative"
)

// ResultCache maps a request fingerprint to a previously computed bundle.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*creative.Bundle, bool)
	Set(ctx context.Context, fingerprint string, bundle *creative.Bundle, ttl time.Duration)
}

// DefaultTTL is how long a cached bundle stays valid.
const DefaultTTL = 24 * time.Hour

type memoryEntry struct {
	bundle    creative.Bundle
	expiresAt time.Time
}

// Memory is an in-process ResultCache used in tests and in deployments
// without a redis backend.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, fingerprint string) (*creative.Bundle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[fingerprint]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, fingerprint)
		return nil, false
	}
	bundle := entry.bundle
	return &bundle, true
}

func (m *Memory) Set(_ context.Context, fingerprint string, bundle *creative.Bundle, ttl time.Duration) {
	if bundle == nil {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[fingerprint] = memoryEntry{bundle: *bundle, expiresAt: time.Now().Add(ttl)}
}
