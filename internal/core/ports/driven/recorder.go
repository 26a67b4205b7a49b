package driven

import "github.com/custodia-labs/cascade/internal/core/domain"

// OutcomeRecorder receives the outcome of every invocation for observability.
// Implementations must not block or fail the cleanup.
type OutcomeRecorder interface {
	RecordOutcome(outcome *domain.CleanupOutcome)
}
