// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"todocli/internal/store"
	"todocli/internal/task"
)

var _ store.Store = (*MemStore)(nil)

// MemStorePath is the path reported by MemStore.
const MemStorePath = "mem/todos.json"

// MemStore is an in-memory implementation of store.Store for testing.
type MemStore struct {
	mu          sync.Mutex
	tasks       []task.Task
	initialized bool
	saves       int
	closed      bool

	// Error injection for testing
	InitErr  error
	LoadErr  error
	SaveErr  error
	CloseErr error
}

// NewMemStore creates an initialized MemStore holding tasks.
func NewMemStore(tasks ...task.Task) *MemStore {
	return &MemStore{
		tasks:       slices.Clone(tasks),
		initialized: true,
	}
}

// NewUninitializedMemStore creates a MemStore that behaves like a missing
// store file until Init or Save is called.
func NewUninitializedMemStore() *MemStore {
	return &MemStore{}
}

// Init implements store.Store.
func (m *MemStore) Init(ctx context.Context) (bool, error) {
	if m.InitErr != nil {
		return false, m.InitErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return false, nil
	}
	m.initialized = true
	m.tasks = nil
	return true, nil
}

// Load implements store.Store.
func (m *MemStore) Load(ctx context.Context) ([]task.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return nil, fmt.Errorf("read store: %w", &fs.PathError{Op: "open", Path: MemStorePath, Err: fs.ErrNotExist})
	}
	out := make([]task.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// Save implements store.Store.
func (m *MemStore) Save(ctx context.Context, tasks []task.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = slices.Clone(tasks)
	m.initialized = true
	m.saves++
	return nil
}

// Path implements store.Store.
func (m *MemStore) Path() string { return MemStorePath }

// Close implements store.Store.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.CloseErr
}

// Tasks returns a copy of the stored tasks.
func (m *MemStore) Tasks() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tasks)
}

// Saves returns how many times Save succeeded.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Closed reports whether Close was called.
func (m *MemStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
