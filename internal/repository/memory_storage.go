package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/morpho-cart/internal/port"
)

type memoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStorage lives as long as the process does.
func NewMemoryStorage() port.Storage {
	return &memoryStorage{entries: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
