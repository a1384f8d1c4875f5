package persist

import (
	"context"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
)

// Memory is a process-local adapter. It backs sessions that opted out of
// durable storage and doubles as the test double for the other adapters.
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

func (m *Memory) Load(ctx context.Context, slot string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.slots[slot]
	return payload, ok, nil
}

func (m *Memory) Save(ctx context.Context, slot, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = payload
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Unavailable models a missing storage medium (no client environment): loads
// report absent, saves are rejected. Controllers swallow both outcomes.
type Unavailable struct{}

func (Unavailable) Load(ctx context.Context, slot string) (string, bool, error) {
	return "", false, nil
}

func (Unavailable) Save(ctx context.Context, slot, payload string) error {
	return pkgerrors.New(pkgerrors.CodeStoreUnavailable, "storage medium absent")
}

func (Unavailable) Ping(ctx context.Context) error {
	return pkgerrors.New(pkgerrors.CodeStoreUnavailable, "storage medium absent")
}
