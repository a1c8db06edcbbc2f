package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MockShard creates in-memory storage shards for tests.
func MockShard() Shard {
	return func(shard string) (Persistence, error) {
		return NewMockStorage(), nil
	}
}

// MockStorage keeps values in memory, serialized the same way the
// file based implementations would.
type MockStorage struct {
	Elements map[Key]string
	mutex    *sync.RWMutex
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Elements: make(map[Key]string),
		mutex:    new(sync.RWMutex),
	}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	m.Elements[k] = string(b)
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	b, ok := m.Elements[k]
	if !ok {
		return fmt.Errorf("no value for '%v': %w", k, NotFoundErr)
	}
	if err := json.Unmarshal([]byte(b), value); err != nil {
		return fmt.Errorf("could not unmarshal key '%v': %w", k, CouldNotLoadErr)
	}
	return nil
}
