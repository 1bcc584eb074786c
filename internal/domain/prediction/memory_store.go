package prediction

import (
	"churn-shield/internal/pkg/apperrors"
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	result    *BatchResult
	expiresAt time.Time
}

// MemoryResultStore is the single-process ResultStore used when Redis is
// disabled. Expired entries are dropped on read.
type MemoryResultStore struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
}

var _ ResultStore = (*MemoryResultStore)(nil)

func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{items: make(map[string]memoryEntry)}
}

func (m *MemoryResultStore) Save(_ context.Context, r *BatchResult, ttl time.Duration) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: batch result id is required", apperrors.ErrInvalidArgument)
	}
	e := memoryEntry{result: r}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.items[r.ID] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryResultStore) Get(_ context.Context, id string) (*BatchResult, error) {
	m.mu.RLock()
	e, ok := m.items[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, id)
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.items, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: batch %s expired", apperrors.ErrNotFound, id)
	}
	return e.result, nil
}
