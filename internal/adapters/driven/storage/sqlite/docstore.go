package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// DocumentStore implements driven.DocumentStore on the documents table.
type DocumentStore struct {
	store *Store
}

// PutDocument creates or replaces the document at path.
func (d *DocumentStore) PutDocument(ctx context.Context, path string, fields map[string]any) error {
	path = strings.Trim(path, "/")
	parent, _, ok := domain.SplitDocumentPath(path)
	if !ok {
		return fmt.Errorf("%w: not a document path: %q", domain.ErrInvalidInput, path)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = d.store.db.ExecContext(ctx, `
		INSERT INTO documents (path, collection_path, collection_id, fields, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`, path, parent, domain.LastSegment(parent), string(fieldsJSON))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by path.
func (d *DocumentStore) Get(ctx context.Context, path string) (*domain.Record, error) {
	var fieldsJSON string
	row := d.store.db.QueryRowContext(ctx, "SELECT fields FROM documents WHERE path = ?", path)
	if err := row.Scan(&fieldsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	record := &domain.Record{Path: path}
	if err := json.Unmarshal([]byte(fieldsJSON), &record.Fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	return record, nil
}

// ListCollection returns the paths of documents directly inside a collection.
func (d *DocumentStore) ListCollection(ctx context.Context, collectionPath string) ([]string, error) {
	return d.queryPaths(ctx, `
		SELECT path FROM documents WHERE collection_path = ? ORDER BY path
	`, strings.Trim(collectionPath, "/"))
}

// FindReferencingRecords returns documents in any collection named
// collectionID whose field equals value.
func (d *DocumentStore) FindReferencingRecords(ctx context.Context, collectionID, field, value string) ([]string, error) {
	if field == "" || strings.ContainsAny(field, `"\`) {
		return nil, fmt.Errorf("%w: unsupported field name %q", domain.ErrInvalidInput, field)
	}
	return d.queryPaths(ctx, `
		SELECT path FROM documents
		WHERE collection_id = ?
		  AND json_type(fields, ?) = 'text'
		  AND json_extract(fields, ?) = ?
		ORDER BY path
	`, collectionID, jsonPath(field), jsonPath(field), value)
}

// CommitDeletes removes all paths in a single transaction.
func (d *DocumentStore) CommitDeletes(ctx context.Context, paths []string) error {
	if len(paths) > d.store.batchLimit {
		return fmt.Errorf("%w: %d deletes, limit %d", domain.ErrBatchTooLarge, len(paths), d.store.batchLimit)
	}
	if len(paths) == 0 {
		return nil
	}

	tx, err := d.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM documents WHERE path = ?")
	if err != nil {
		return fmt.Errorf("preparing delete: %w", err)
	}
	defer stmt.Close()

	for _, path := range paths {
		if _, err := stmt.ExecContext(ctx, path); err != nil {
			return fmt.Errorf("deleting %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deletes: %w", err)
	}
	return nil
}

// BatchLimit returns the maximum number of deletes per commit.
func (d *DocumentStore) BatchLimit() int {
	return d.store.batchLimit
}

// Delete removes a single document.
func (d *DocumentStore) Delete(ctx context.Context, path string) error {
	if _, err := d.store.db.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func (d *DocumentStore) queryPaths(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := d.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning path: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// jsonPath quotes a top-level field name for json_extract.
func jsonPath(field string) string {
	return `$."` + field + `"`
}
