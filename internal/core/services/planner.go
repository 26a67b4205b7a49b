package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/logger"
)

// PlanActions derives the cleanup actions for a deleted entity.
// It performs no I/O. Rules are independent; a missing precondition
// simply contributes no action.
func PlanActions(entity *domain.DeletedEntity) []domain.CleanupAction {
	var actions []domain.CleanupAction

	if entity.HasMedia() {
		actions = append(actions, domain.NewRemoveObjectAction(entity.MediaRef))
	}

	actions = append(actions,
		domain.NewPurgeSubcollectionAction(domain.CommentsPath(entity.ID), domain.ReasonComment))

	if entity.Kind.IsBook() {
		actions = append(actions,
			domain.NewPurgeReferencesAction(domain.SavedBooksCollection, domain.BookIDField,
				entity.ID, domain.ReasonSavedReference),
			domain.NewPurgeReferencesAction(domain.TrackedBooksCollection, domain.BookIDField,
				entity.ID, domain.ReasonTrackedReference),
		)
	}

	// Owner-keyed: without an owner the private copy cannot be located.
	if entity.HasOwner() {
		actions = append(actions,
			domain.NewRemoveDocumentAction(domain.PrivateCopyPath(entity.OwnerID, entity.ID),
				domain.ReasonPrivateCopy))
	}

	return actions
}

// Planner resolves cleanup actions into dependent record references.
// It only reads from the document store.
type Planner struct {
	reader driven.DocumentReader
	finder driven.ReferenceFinder
	log    logger.Logger
}

// NewPlanner creates a planner.
func NewPlanner(reader driven.DocumentReader, finder driven.ReferenceFinder, log logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{
		reader: reader,
		finder: finder,
		log:    log,
	}
}

// Plan builds and resolves the cleanup plan for an entity.
// Discovery failures are recorded in the plan rather than returned;
// the error is only set for invalid input.
func (p *Planner) Plan(ctx context.Context, entity *domain.DeletedEntity) (*domain.CleanupPlan, error) {
	if entity == nil {
		return nil, fmt.Errorf("%w: nil entity", domain.ErrInvalidInput)
	}
	plan := domain.NewCleanupPlan(entity.ID, PlanActions(entity))
	p.resolve(ctx, plan, p.log.With("content_id", entity.ID))
	return plan, nil
}

// resolve runs discovery for every queried record action concurrently.
// Deterministic paths are added as-is. Records are appended in action order
// so plans are deterministic.
func (p *Planner) resolve(ctx context.Context, plan *domain.CleanupPlan, log logger.Logger) {
	type resolved struct {
		refs    []domain.DependentRecordRef
		failure *domain.ActionResult
	}
	results := make([]resolved, len(plan.Actions))

	var g errgroup.Group
	for i, action := range plan.Actions {
		if !action.IsRecordAction() {
			continue
		}
		if !action.NeedsDiscovery() {
			results[i].refs = []domain.DependentRecordRef{{Path: action.Path, Reason: action.Reason}}
			continue
		}
		g.Go(func() error {
			refs, err := p.discover(ctx, action)
			if err != nil {
				results[i].failure = &domain.ActionResult{
					Action: action.Name(),
					Lane:   domain.LaneDiscovery,
					Status: domain.StatusFailed,
					Err:    err,
				}
				return nil
			}
			results[i].refs = refs
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range results {
		action := plan.Actions[i]
		if r.failure != nil {
			log.Error("Dependent record query failed, skipping step",
				"action", action.Name(), "error", r.failure.Err)
			plan.AddFailure(*r.failure)
			continue
		}
		if len(r.refs) == 0 {
			continue
		}
		plan.AddRecords(r.refs...)
		logResolved(log, action, len(r.refs))
	}
}

func (p *Planner) discover(ctx context.Context, action domain.CleanupAction) ([]domain.DependentRecordRef, error) {
	switch action.Type {
	case domain.ActionPurgeSubcollection:
		if p.reader == nil {
			return nil, fmt.Errorf("%w: no document reader configured", domain.ErrQueryFailed)
		}
		paths, err := p.reader.ListCollection(ctx, action.CollectionPath)
		if err != nil {
			return nil, fmt.Errorf("%w: listing %s: %w", domain.ErrQueryFailed, action.CollectionPath, err)
		}
		return refsFor(paths, action.Reason), nil

	case domain.ActionPurgeReferences:
		if p.finder == nil {
			return nil, fmt.Errorf("%w: no reference finder configured", domain.ErrQueryFailed)
		}
		paths, err := p.finder.FindReferencingRecords(ctx, action.CollectionID, action.Field, action.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: querying %s where %s == %q: %w",
				domain.ErrQueryFailed, action.CollectionID, action.Field, action.Value, err)
		}
		return refsFor(paths, action.Reason), nil

	default:
		return nil, nil
	}
}

func refsFor(paths []string, reason domain.RefReason) []domain.DependentRecordRef {
	if len(paths) == 0 {
		return nil
	}
	refs := make([]domain.DependentRecordRef, len(paths))
	for i, path := range paths {
		refs[i] = domain.DependentRecordRef{Path: path, Reason: reason}
	}
	return refs
}

func logResolved(log logger.Logger, action domain.CleanupAction, count int) {
	switch action.Type {
	case domain.ActionPurgeSubcollection:
		log.Info(fmt.Sprintf("Deleting %d %s.", count, domain.LastSegment(action.CollectionPath)))
	case domain.ActionPurgeReferences:
		log.Info(fmt.Sprintf("Deleting %d entries from %s.", count, action.CollectionID))
	case domain.ActionRemoveDocument:
		log.Info("Deleting entry from author's private content.", "path", action.Path)
	}
}
