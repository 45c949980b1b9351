// file: repository/memory_repository.go

package repository

import (
	"errors"
	"sort"
	"sync"

	"go-atm/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("record with this key already exists")
)

// MemoryRepository is a process-lifetime keyed store. It holds values for as
// long as the process runs and never writes them anywhere.
type MemoryRepository[T any] struct {
	name string
	mu   sync.RWMutex
	data map[string]T
}

// NewMemoryRepository creates an empty store. name is only used in logs.
func NewMemoryRepository[T any](name string) *MemoryRepository[T] {
	return &MemoryRepository[T]{name: name, data: make(map[string]T)}
}

// Create inserts value under key, failing with ErrDuplicateKey if the key is
// taken. The check and the insert happen under one lock.
func (r *MemoryRepository[T]) Create(key string, value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[key]; ok {
		return ErrDuplicateKey
	}
	r.data[key] = value
	logger.Log.WithFields(logrus.Fields{
		"store": r.name,
		"size":  len(r.data),
	}).Debug("Record created")
	return nil
}

// Get returns the value under key or ErrNotFound.
func (r *MemoryRepository[T]) Get(key string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (r *MemoryRepository[T]) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
}

// List returns every value ordered by key.
func (r *MemoryRepository[T]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.data[k])
	}
	return out
}

func (r *MemoryRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
