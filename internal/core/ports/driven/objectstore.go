package driven

import (
	"context"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// ObjectStore removes binary objects.
type ObjectStore interface {
	// DeleteObject removes the object at loc.
	// Returns domain.ErrObjectNotFound if the object does not exist.
	DeleteObject(ctx context.Context, loc domain.ObjectLocator) error
}
