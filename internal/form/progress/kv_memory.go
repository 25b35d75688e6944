package progress

import (
	"context"
	"sync"

	"originform/pkg/sentinel"
)

// InMemoryKV keeps the initial implementation lightweight and testable. It
// intentionally favors clarity over performance.
type InMemoryKV struct {
	mu     sync.RWMutex
	values map[string]string

	// failNext, when set, makes the next Set fail. Lets tests exercise the
	// quota-exceeded path of a durable store.
	failNext error
}

// NewInMemoryKV creates an empty in-memory key-value store.
func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{values: make(map[string]string)}
}

func (kv *InMemoryKV) Get(_ context.Context, key string) (string, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	if v, ok := kv.values[key]; ok {
		return v, nil
	}
	return "", sentinel.ErrNotFound
}

func (kv *InMemoryKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failNext != nil {
		err := kv.failNext
		kv.failNext = nil
		return err
	}
	kv.values[key] = value
	return nil
}

func (kv *InMemoryKV) Remove(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.values, key)
	return nil
}

// FailNextSet arranges for the next Set to return err.
func (kv *InMemoryKV) FailNextSet(err error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.failNext = err
}
