package securekv

import (
	"maps"
	"slices"
	"sync"
)

// Memory is a Backend kept in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[name]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(v), nil
}

// Set implements Backend.
func (m *Memory) Set(name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = slices.Clone(value)

	return nil
}

// Delete implements Backend.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, name)

	return nil
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.values))
}
