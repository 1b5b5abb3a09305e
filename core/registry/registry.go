package registry

import (
	"errors"
	"fmt"
	"sync"
)

// Registry is a process-wide key/value store for extension points. A key is
// locked once its consumers have read it, after which Append refuses it.
type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry holds the cmd, cron and api registrations made from init().
var GlobalRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{values: map[string]interface{}{}, locked: map[string]bool{}}
}

func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

func (r *Registry) SetGlobal(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}

// Lock marks key as read-only.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = true
}

func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens key for registration.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locked, key)
}

// ErrLocked is returned when registering under a key that was already read.
var ErrLocked = errors.New("registry locked")

// Append adds item to the list stored under key.
func Append[T any](r *Registry, key string, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}
	list, _ := r.values[key].([]T)
	r.values[key] = append(list, item)
	return nil
}

// List returns a copy of the list stored under key.
func List[T any](r *Registry, key string) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, _ := r.values[key].([]T)
	return append([]T(nil), list...)
}

// Seal locks key and returns its list. Registrations after Seal fail.
func Seal[T any](r *Registry, key string) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = true
	list, _ := r.values[key].([]T)
	return append([]T(nil), list...)
}

// Remove drops the list items for which match returns true, locked or not.
func Remove[T any](r *Registry, key string, match func(T) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, _ := r.values[key].([]T)
	kept := list[:0:0]
	for _, item := range list {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	r.values[key] = kept
}
