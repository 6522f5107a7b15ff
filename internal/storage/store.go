// Package storage implements the persistence slot for the application state
// snapshot: a durable local key-value store holding one JSON document under
// a fixed namespaced key.
package storage

import (
	"context"
	"sync"
)

// SnapshotKey is the fixed key the state snapshot is stored under.
const SnapshotKey = "taskflow_state_v1"

// Store reads and writes the serialized state snapshot. Load returns
// (nil, nil) when no snapshot has been saved yet; Clear of an absent
// snapshot is not an error.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

// MemStore is an in-memory Store used in tests.
type MemStore struct {
	mu   sync.Mutex
	data []byte

	// SaveErr, when set, is returned by Save to simulate storage failures.
	SaveErr error
	// Saves counts successful Save calls.
	Saves int
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	m.Saves++
	return nil
}

func (m *MemStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
