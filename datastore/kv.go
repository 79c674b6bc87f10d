package datastore

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoStore is returned by writes when the service runs without a store
var ErrNoStore = errors.New("no persistent store configured")

// KVStore is the key-value collaborator the service persists JSON documents in
type KVStore interface {
	// Get returns NoRowsError when key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Unwrap() error {
	return nr.Err
}

// IsNotFound reports whether err means the key does not exist
func IsNotFound(err error) bool {
	var nr NoRowsError
	return errors.As(err, &nr) && nr.NoRows
}

var errKeyNotFound = errors.New("key not found")

// MemoryKV keeps documents in process memory; used for development and tests
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, NoRowsError{true, errKeyNotFound}
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
