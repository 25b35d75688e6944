package blob

import (
	"context"
	"sync"
)

// object is one stored attachment.
type object struct {
	mediaType string
	content   []byte
}

// InMemoryStore holds attachments in a map for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
}

// NewInMemoryStore creates an empty in-memory blob store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string]object)}
}

func (s *InMemoryStore) Put(_ context.Context, key, mediaType string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(content))
	copy(cp, content)
	s.objects[key] = object{mediaType: mediaType, content: cp}
	return nil
}

// Get returns a stored object's content and media type, for assertions.
func (s *InMemoryStore) Get(key string) (content []byte, mediaType string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.content, obj.mediaType, true
}

// Len reports how many objects are stored.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
