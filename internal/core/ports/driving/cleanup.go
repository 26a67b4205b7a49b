package driving

import (
	"context"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// CleanupService restores referential integrity after a primary entity is deleted.
type CleanupService interface {
	// HandleDeletion runs the full cleanup for one deletion event.
	// A nil snapshot means there is nothing to clean up and succeeds
	// immediately. The returned error is non-nil when a discovery or commit
	// step failed and the event should be redelivered; the outcome is
	// returned in both cases.
	HandleDeletion(ctx context.Context, entityID string, snapshot map[string]any) (*domain.CleanupOutcome, error)

	// Plan resolves the cleanup plan for an entity without removing anything.
	Plan(ctx context.Context, entity *domain.DeletedEntity) (*domain.CleanupPlan, error)

	// Execute carries out a resolved plan.
	Execute(ctx context.Context, plan *domain.CleanupPlan) (*domain.CleanupOutcome, error)
}
