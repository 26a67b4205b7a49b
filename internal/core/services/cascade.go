package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/core/ports/driving"
	"github.com/custodia-labs/cascade/internal/logger"
)

// Ensure CascadeService implements the interface.
var _ driving.CleanupService = (*CascadeService)(nil)

// CascadeService coordinates cleanup after a primary entity is deleted.
// It is stateless between invocations; concurrent calls share nothing
// but the injected stores.
type CascadeService struct {
	planner  *Planner
	executor *Executor
	recorder driven.OutcomeRecorder
	log      logger.Logger
	newID    func() string
	now      func() time.Time
}

// NewCascadeService creates a cascade service. recorder may be nil.
func NewCascadeService(
	planner *Planner,
	executor *Executor,
	recorder driven.OutcomeRecorder,
	log logger.Logger,
) *CascadeService {
	if log == nil {
		log = logger.Nop()
	}
	return &CascadeService{
		planner:  planner,
		executor: executor,
		recorder: recorder,
		log:      log,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// HandleDeletion runs the full cleanup for one deletion event.
//
// The object lane starts alongside dependent-record discovery; batch commits
// wait for discovery to finish. Running it again for the same entity is
// safe: removed records are no longer found and absent objects count as
// removed.
func (s *CascadeService) HandleDeletion(
	ctx context.Context,
	entityID string,
	snapshot map[string]any,
) (*domain.CleanupOutcome, error) {
	start := s.now()
	invocationID := s.newID()
	log := s.log.With("invocation_id", invocationID, "content_id", entityID)

	if snapshot == nil {
		log.Info("No data associated with the event, skipping cleanup.")
		outcome := &domain.CleanupOutcome{
			EntityID:     entityID,
			InvocationID: invocationID,
			Skipped:      true,
			SkipReason:   domain.ErrSnapshotMissing,
		}
		s.finish(outcome, start, log)
		return outcome, nil
	}

	entity, err := domain.EntityFromSnapshot(entityID, snapshot)
	if err != nil {
		log.Error("Rejected deletion event", "error", err)
		return nil, err
	}

	log.Info(fmt.Sprintf("Starting cleanup for contentId: %s by author: %s", entity.ID, entity.OwnerID),
		"content_type", entity.Kind.String())

	plan := domain.NewCleanupPlan(entity.ID, PlanActions(entity))

	var (
		objectResult *domain.ActionResult
		g            errgroup.Group
	)
	if obj := plan.ObjectRemoval(); obj != nil {
		g.Go(func() error {
			r := s.executor.removeObject(ctx, *obj, log)
			objectResult = &r
			return nil
		})
	}
	g.Go(func() error {
		s.planner.resolve(ctx, plan, log)
		return nil
	})
	_ = g.Wait()

	records := s.executor.removeRecords(ctx, plan.Records, log)

	outcome := assembleOutcome(plan, objectResult, records)
	outcome.InvocationID = invocationID
	s.finish(outcome, start, log)
	return outcome, outcome.Err()
}

// Plan resolves the cleanup plan for an entity without removing anything.
func (s *CascadeService) Plan(ctx context.Context, entity *domain.DeletedEntity) (*domain.CleanupPlan, error) {
	return s.planner.Plan(ctx, entity)
}

// Execute carries out a resolved plan and reports the outcome.
func (s *CascadeService) Execute(ctx context.Context, plan *domain.CleanupPlan) (*domain.CleanupOutcome, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: nil plan", domain.ErrInvalidInput)
	}
	start := s.now()
	invocationID := s.newID()
	log := s.log.With("invocation_id", invocationID, "content_id", plan.EntityID)

	outcome := s.executor.execute(ctx, plan, log)
	outcome.InvocationID = invocationID
	s.finish(outcome, start, log)
	return outcome, outcome.Err()
}

func (s *CascadeService) finish(outcome *domain.CleanupOutcome, start time.Time, log logger.Logger) {
	outcome.Duration = s.now().Sub(start)

	switch {
	case outcome.Skipped:
	case outcome.Succeeded():
		log.Info(fmt.Sprintf("Successfully completed cleanup for contentId: %s", outcome.EntityID),
			"records_deleted", outcome.RecordsDeleted,
			"batches", outcome.BatchesCommitted,
			"best_effort_failures", len(outcome.Failures()),
			"duration", outcome.Duration)
	default:
		log.Error(fmt.Sprintf("Cleanup incomplete for contentId: %s", outcome.EntityID),
			"records_deleted", outcome.RecordsDeleted,
			"batches", outcome.BatchesCommitted,
			"error", outcome.Err(),
			"duration", outcome.Duration)
	}

	if s.recorder != nil {
		s.recorder.RecordOutcome(outcome)
	}
}
