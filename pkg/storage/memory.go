package storage

import "sync"

// MemoryKV is an in-process store, used for tests and --storage memory.
type MemoryKV struct {
	mu       sync.Mutex
	values   map[string]string
	writeErr error
	readErr  error
}

// NewMemoryKV returns an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

// FailWrites makes every Set and Delete return err until cleared with nil.
func (m *MemoryKV) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// FailReads makes every Get return err until cleared with nil.
func (m *MemoryKV) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Get implements KV
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements KV
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.values[key] = value
	return nil
}

// Delete implements KV
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	delete(m.values, key)
	return nil
}

// Close implements KV
func (m *MemoryKV) Close() error {
	return nil
}
