package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/logger"
)

// recordLaneAction labels the record lane's result.
const recordLaneAction = "commit-deletes"

// Executor carries out a resolved plan in two independent lanes.
//
// The object lane is best-effort: its failures are logged and recorded but
// never escalate. The record lane commits every dependent record in as few
// atomic batches as the store allows. Batches are not atomic with each other;
// a failed batch does not roll back batches already committed.
type Executor struct {
	deleter    driven.BatchDeleter
	objects    driven.ObjectStore
	batchLimit int
	log        logger.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithBatchLimit caps batch size below the store's own limit.
func WithBatchLimit(limit int) ExecutorOption {
	return func(e *Executor) {
		e.batchLimit = limit
	}
}

// NewExecutor creates an executor.
func NewExecutor(
	deleter driven.BatchDeleter,
	objects driven.ObjectStore,
	log logger.Logger,
	opts ...ExecutorOption,
) *Executor {
	if log == nil {
		log = logger.Nop()
	}
	e := &Executor{
		deleter: deleter,
		objects: objects,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the object and record lanes of a plan concurrently.
// Discovery failures already recorded in the plan are carried into the outcome.
func (e *Executor) Execute(ctx context.Context, plan *domain.CleanupPlan) *domain.CleanupOutcome {
	return e.execute(ctx, plan, e.log.With("content_id", plan.EntityID))
}

func (e *Executor) execute(ctx context.Context, plan *domain.CleanupPlan, log logger.Logger) *domain.CleanupOutcome {
	var (
		objectResult *domain.ActionResult
		records      recordLaneResult
		g            errgroup.Group
	)

	if obj := plan.ObjectRemoval(); obj != nil {
		g.Go(func() error {
			r := e.removeObject(ctx, *obj, log)
			objectResult = &r
			return nil
		})
	}
	g.Go(func() error {
		records = e.removeRecords(ctx, plan.Records, log)
		return nil
	})
	_ = g.Wait()

	return assembleOutcome(plan, objectResult, records)
}

// BatchLimit returns the effective number of deletes per commit.
func (e *Executor) BatchLimit() int {
	limit := domain.MaxBatchLimit
	if e.deleter != nil {
		if l := e.deleter.BatchLimit(); l > 0 && l < limit {
			limit = l
		}
	}
	if e.batchLimit > 0 && e.batchLimit < limit {
		limit = e.batchLimit
	}
	return limit
}

// removeObject deletes the planned object. An object that is already gone
// counts as removed.
func (e *Executor) removeObject(ctx context.Context, action domain.CleanupAction, log logger.Logger) domain.ActionResult {
	result := domain.ActionResult{
		Action: action.Name(),
		Lane:   domain.LaneObject,
	}

	if action.LocatorErr != nil {
		log.Error("Failed to delete image", "image_url", action.MediaRef, "error", action.LocatorErr)
		result.Status = domain.StatusFailed
		result.Err = action.LocatorErr
		return result
	}

	if e.objects == nil {
		result.Status = domain.StatusFailed
		result.Err = fmt.Errorf("%w: no object store configured", domain.ErrObjectDeleteFailed)
		log.Error("Failed to delete image", "image_url", action.MediaRef, "error", result.Err)
		return result
	}

	err := e.objects.DeleteObject(ctx, action.Object)
	switch {
	case err == nil:
		log.Info("Deleted image", "image_url", action.MediaRef, "object", action.Object.String())
		result.Status = domain.StatusSucceeded
		result.Count = 1
	case errors.Is(err, domain.ErrObjectNotFound):
		log.Info("Image already deleted", "image_url", action.MediaRef, "object", action.Object.String())
		result.Status = domain.StatusSucceeded
	default:
		if !errors.Is(err, domain.ErrObjectDeleteFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrObjectDeleteFailed, err)
		}
		log.Error("Failed to delete image", "image_url", action.MediaRef, "error", err)
		result.Status = domain.StatusFailed
		result.Err = err
	}
	return result
}

type recordLaneResult struct {
	result  domain.ActionResult
	batches int
}

// removeRecords commits the records in sequential batches of at most
// BatchLimit deletes. Every batch is attempted even after a failure.
func (e *Executor) removeRecords(ctx context.Context, refs []domain.DependentRecordRef, log logger.Logger) recordLaneResult {
	lane := recordLaneResult{
		result: domain.ActionResult{
			Action: recordLaneAction,
			Lane:   domain.LaneRecords,
		},
	}

	paths := uniquePaths(refs)
	if len(paths) == 0 {
		log.Debug("No dependent records to delete")
		lane.result.Status = domain.StatusSkipped
		return lane
	}

	if e.deleter == nil {
		lane.result.Status = domain.StatusFailed
		lane.result.Err = fmt.Errorf("%w: no document store configured", domain.ErrBatchCommitFailed)
		log.Error("Error committing batch deletes", "error", lane.result.Err)
		return lane
	}

	batches := chunkPaths(paths, e.BatchLimit())
	var errs []error
	for i, batch := range batches {
		if err := e.deleter.CommitDeletes(ctx, batch); err != nil {
			err = fmt.Errorf("%w: batch %d/%d: %w", domain.ErrBatchCommitFailed, i+1, len(batches), err)
			log.Error("Error committing batch deletes",
				"batch", i+1, "batches", len(batches), "size", len(batch), "error", err)
			errs = append(errs, err)
			continue
		}
		lane.batches++
		lane.result.Count += len(batch)
		log.Debug("Committed batch deletes", "batch", i+1, "batches", len(batches), "size", len(batch))
	}

	if len(errs) > 0 {
		lane.result.Status = domain.StatusFailed
		lane.result.Err = errors.Join(errs...)
		return lane
	}
	lane.result.Status = domain.StatusSucceeded
	return lane
}

func assembleOutcome(plan *domain.CleanupPlan, objectResult *domain.ActionResult, records recordLaneResult) *domain.CleanupOutcome {
	outcome := &domain.CleanupOutcome{EntityID: plan.EntityID}
	outcome.Add(plan.Failures...)
	if objectResult != nil {
		outcome.Add(*objectResult)
	}
	outcome.Add(records.result)
	outcome.RecordsDeleted = records.result.Count
	outcome.BatchesCommitted = records.batches
	return outcome
}

// uniquePaths returns the record paths in order with duplicates removed.
func uniquePaths(refs []domain.DependentRecordRef) []string {
	seen := make(map[string]struct{}, len(refs))
	paths := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Path]; ok {
			continue
		}
		seen[ref.Path] = struct{}{}
		paths = append(paths, ref.Path)
	}
	return paths
}

// chunkPaths splits paths into consecutive chunks of at most size elements.
func chunkPaths(paths []string, size int) [][]string {
	if size <= 0 {
		size = max(len(paths), 1)
	}
	chunks := make([][]string, 0, (len(paths)+size-1)/size)
	for start := 0; start < len(paths); start += size {
		end := min(start+size, len(paths))
		chunks = append(chunks, paths[start:end])
	}
	return chunks
}
