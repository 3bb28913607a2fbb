package repository

import (
	"context"
	"sync"
)

// MemorySlots is a SlotStore held in process memory.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte
	fail  error
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Get(_ context.Context, name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemorySlots) Put(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.slots[name] = append([]byte(nil), value...)
	return nil
}

// FailWrites makes every subsequent Put return err. A nil err restores writes.
func (m *MemorySlots) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}
