package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/custodia-labs/cascade/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/logger"
)

var errStoreUnavailable = errors.New("store unavailable")

// mockDocumentStore wraps the in-memory store to record batches and inject failures.
type mockDocumentStore struct {
	*memory.DocumentStore

	mu            sync.Mutex
	batches       [][]string
	failQueries   map[string]bool
	failList      bool
	failCommitsAt map[int]bool
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		DocumentStore: memory.NewDocumentStore(),
		failQueries:   make(map[string]bool),
		failCommitsAt: make(map[int]bool),
	}
}

func (m *mockDocumentStore) ListCollection(ctx context.Context, collectionPath string) ([]string, error) {
	if m.failList {
		return nil, errStoreUnavailable
	}
	return m.DocumentStore.ListCollection(ctx, collectionPath)
}

func (m *mockDocumentStore) FindReferencingRecords(ctx context.Context, collectionID, field, value string) ([]string, error) {
	if m.failQueries[collectionID] {
		return nil, errStoreUnavailable
	}
	return m.DocumentStore.FindReferencingRecords(ctx, collectionID, field, value)
}

// CommitDeletes fails the call numbered in failCommitsAt (1-based).
func (m *mockDocumentStore) CommitDeletes(ctx context.Context, paths []string) error {
	m.mu.Lock()
	m.batches = append(m.batches, slices.Clone(paths))
	call := len(m.batches)
	m.mu.Unlock()

	if m.failCommitsAt[call] {
		return errStoreUnavailable
	}
	return m.DocumentStore.CommitDeletes(ctx, paths)
}

func (m *mockDocumentStore) committed() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.batches)
}

// mockObjectStore wraps the in-memory object store with an injectable error.
type mockObjectStore struct {
	*memory.ObjectStore
	err error

	mu      sync.Mutex
	deleted []domain.ObjectLocator
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{ObjectStore: memory.NewObjectStore()}
}

func (m *mockObjectStore) DeleteObject(ctx context.Context, loc domain.ObjectLocator) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, loc)
	m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	return m.ObjectStore.DeleteObject(ctx, loc)
}

func (m *mockObjectStore) calls() []domain.ObjectLocator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.deleted)
}

// mockRecorder keeps every recorded outcome.
type mockRecorder struct {
	mu       sync.Mutex
	outcomes []*domain.CleanupOutcome
}

func (r *mockRecorder) RecordOutcome(outcome *domain.CleanupOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func mustPut(store *mockDocumentStore, path string, fields map[string]any) {
	if err := store.Put(path, fields); err != nil {
		panic(err)
	}
}

// seedBook stores the scenario used across the cascade tests: book b1 by u1
// with three comments, one matching and one unrelated saved entry, and a
// private copy.
func seedBook(store *mockDocumentStore, objects *mockObjectStore) map[string]any {
	mustPut(store, "publicContent/b1/comments/c1", map[string]any{"text": "one"})
	mustPut(store, "publicContent/b1/comments/c2", map[string]any{"text": "two"})
	mustPut(store, "publicContent/b1/comments/c3", map[string]any{"text": "three"})
	mustPut(store, "users/u2/savedBooks/s1", map[string]any{"bookId": "b1"})
	mustPut(store, "users/u3/savedBooks/s2", map[string]any{"bookId": "b2"})
	mustPut(store, "users/u1/content/b1", map[string]any{"title": "draft"})
	objects.Put(domain.ObjectLocator{Path: "images/b1.png"}, []byte("png"))

	return map[string]any{
		"authorId":    "u1",
		"contentType": "Book",
		"imageUrl":    "https://store/o/images%2Fb1.png?token=x",
	}
}
