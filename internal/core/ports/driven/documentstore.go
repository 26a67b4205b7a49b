package driven

import (
	"context"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// DocumentReader performs read-only lookups against the document store.
type DocumentReader interface {
	// Get retrieves a document by path.
	// Returns domain.ErrNotFound if the document does not exist.
	Get(ctx context.Context, path string) (*domain.Record, error)

	// ListCollection returns the paths of every document directly inside
	// the collection at collectionPath. An empty or missing collection
	// returns no paths and no error.
	ListCollection(ctx context.Context, collectionPath string) ([]string, error)
}

// ReferenceFinder discovers records that reference a value through a foreign
// key field, across every collection sharing a name (collection-group query).
type ReferenceFinder interface {
	// FindReferencingRecords returns the paths of all documents in any
	// collection named collectionID whose field equals value.
	FindReferencingRecords(ctx context.Context, collectionID, field, value string) ([]string, error)
}

// BatchDeleter removes documents atomically.
type BatchDeleter interface {
	// CommitDeletes deletes all paths as one all-or-nothing unit.
	// Deleting an absent path succeeds. Returns domain.ErrBatchTooLarge
	// if len(paths) exceeds BatchLimit.
	CommitDeletes(ctx context.Context, paths []string) error

	// BatchLimit returns the maximum number of deletes per commit.
	BatchLimit() int
}

// DocumentStore is the full document store capability set.
type DocumentStore interface {
	DocumentReader
	ReferenceFinder
	BatchDeleter

	// Delete removes a single document. Deleting an absent path succeeds.
	Delete(ctx context.Context, path string) error
}

// DocumentWriter stores documents. It is used to seed local stores and is
// never called by the cleanup path.
type DocumentWriter interface {
	// PutDocument creates or replaces the document at path.
	PutDocument(ctx context.Context, path string, fields map[string]any) error
}
