package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore  = (*DocumentStore)(nil)
	_ driven.DocumentWriter = (*DocumentStore)(nil)
)

// DocumentStats counts the calls made against a DocumentStore.
type DocumentStats struct {
	Gets    int
	Lists   int
	Queries int
	Commits int
	Deletes int
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are keyed by their full path.
type DocumentStore struct {
	mu         sync.RWMutex
	documents  map[string]map[string]any
	batchLimit int
	stats      DocumentStats
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents:  make(map[string]map[string]any),
		batchLimit: domain.MaxBatchLimit,
	}
}

// SetBatchLimit changes the maximum number of deletes per commit.
func (s *DocumentStore) SetBatchLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchLimit = limit
}

// Put stores or replaces a document.
func (s *DocumentStore) Put(path string, fields map[string]any) error {
	if _, _, ok := domain.SplitDocumentPath(path); !ok {
		return fmt.Errorf("%w: not a document path: %q", domain.ErrInvalidInput, path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[cleanPath(path)] = maps.Clone(fields)
	return nil
}

// PutDocument stores or replaces a document.
func (s *DocumentStore) PutDocument(_ context.Context, path string, fields map[string]any) error {
	return s.Put(path, fields)
}

// Exists reports whether a document is stored at path.
func (s *DocumentStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[cleanPath(path)]
	return ok
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Stats returns the call counters.
func (s *DocumentStore) Stats() DocumentStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Get retrieves a document by path.
func (s *DocumentStore) Get(_ context.Context, path string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Gets++
	path = cleanPath(path)
	fields, ok := s.documents[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Record{Path: path, Fields: maps.Clone(fields)}, nil
}

// ListCollection returns the paths of documents directly inside a collection.
func (s *DocumentStore) ListCollection(_ context.Context, collectionPath string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Lists++
	collectionPath = cleanPath(collectionPath)
	var paths []string
	for path := range s.documents {
		parent, _, ok := domain.SplitDocumentPath(path)
		if ok && parent == collectionPath {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// FindReferencingRecords returns documents in any collection named
// collectionID whose field equals value.
func (s *DocumentStore) FindReferencingRecords(_ context.Context, collectionID, field, value string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Queries++
	var paths []string
	for path, fields := range s.documents {
		if domain.CollectionID(path) != collectionID {
			continue
		}
		if v, ok := fields[field].(string); ok && v == value {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// CommitDeletes removes all paths at once under a single lock.
func (s *DocumentStore) CommitDeletes(_ context.Context, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(paths) > s.batchLimit {
		return fmt.Errorf("%w: %d deletes, limit %d", domain.ErrBatchTooLarge, len(paths), s.batchLimit)
	}
	s.stats.Commits++
	for _, path := range paths {
		delete(s.documents, cleanPath(path))
	}
	return nil
}

// BatchLimit returns the maximum number of deletes per commit.
func (s *DocumentStore) BatchLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batchLimit
}

// Delete removes a single document.
func (s *DocumentStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Deletes++
	delete(s.documents, cleanPath(path))
	return nil
}

// cleanPath strips leading and trailing slashes so "/a/b" and "a/b" address
// the same document.
func cleanPath(path string) string {
	return strings.Trim(path, "/")
}
