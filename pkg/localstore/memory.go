package localstore

import (
	"context"
	"sync"
)

// Memory keeps state in-process. Used by tests and the memory driver.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	subs   map[int]func()
	nextID int
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		subs:   make(map[int]func()),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	return val, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	subs := m.snapshotSubs()
	m.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	_, existed := m.values[key]
	delete(m.values, key)
	var subs []func()
	if existed {
		subs = m.snapshotSubs()
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
	return nil
}

func (m *Memory) Subscribe(fn func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}, nil
}

func (m *Memory) Close() error {
	return nil
}

// callers hold the lock
func (m *Memory) snapshotSubs() []func() {
	subs := make([]func(), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}
