package store

import (
	"context"
	"sync"
)

// Store persists the last-processed post identifier across cycles.
// The in-memory implementation satisfies the minimal contract; the Redis
// implementation survives process restarts.
type Store interface {
	LastProcessed(ctx context.Context) (string, error)
	SetLastProcessed(ctx context.Context, id string) error
}

// Memory is the default in-process store.
type Memory struct {
	mu sync.Mutex
	id string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LastProcessed(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, nil
}

func (m *Memory) SetLastProcessed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	return nil
}
