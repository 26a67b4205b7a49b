package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// ObjectStore implements driven.ObjectStore on the objects table.
type ObjectStore struct {
	store *Store
}

// PutObject creates or replaces an object.
func (o *ObjectStore) PutObject(ctx context.Context, loc domain.ObjectLocator, data []byte) error {
	_, err := o.store.db.ExecContext(ctx, `
		INSERT INTO objects (bucket, path, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(bucket, path) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, loc.Bucket, loc.Path, data)
	if err != nil {
		return fmt.Errorf("saving object: %w", err)
	}
	return nil
}

// Exists reports whether an object is stored at loc.
func (o *ObjectStore) Exists(ctx context.Context, loc domain.ObjectLocator) (bool, error) {
	var n int
	row := o.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM objects WHERE bucket = ? AND path = ?", loc.Bucket, loc.Path)
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("counting objects: %w", err)
	}
	return n > 0, nil
}

// DeleteObject removes an object. Returns domain.ErrObjectNotFound if it is absent.
func (o *ObjectStore) DeleteObject(ctx context.Context, loc domain.ObjectLocator) error {
	result, err := o.store.db.ExecContext(ctx,
		"DELETE FROM objects WHERE bucket = ? AND path = ?", loc.Bucket, loc.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrObjectDeleteFailed, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrObjectDeleteFailed, err)
	}
	if n == 0 {
		return domain.ErrObjectNotFound
	}
	return nil
}
