package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is an in-memory implementation of driven.ObjectStore.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[domain.ObjectLocator][]byte
	deletes int
}

// NewObjectStore creates a new in-memory object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[domain.ObjectLocator][]byte),
	}
}

// Put stores an object.
func (s *ObjectStore) Put(loc domain.ObjectLocator, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[loc] = data
}

// Exists reports whether an object is stored at loc.
func (s *ObjectStore) Exists(loc domain.ObjectLocator) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[loc]
	return ok
}

// Deletes returns the number of DeleteObject calls.
func (s *ObjectStore) Deletes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deletes
}

// DeleteObject removes an object.
func (s *ObjectStore) DeleteObject(_ context.Context, loc domain.ObjectLocator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if _, ok := s.objects[loc]; !ok {
		return domain.ErrObjectNotFound
	}
	delete(s.objects, loc)
	return nil
}
