package domain

import (
	"errors"
	"time"
)

// Lane identifies which part of the cleanup produced a result.
type Lane string

// Cleanup lanes.
const (
	// LaneObject is the best-effort object removal lane.
	LaneObject Lane = "object"

	// LaneDiscovery is the dependent-record query phase.
	LaneDiscovery Lane = "discovery"

	// LaneRecords is the batched record removal lane.
	LaneRecords Lane = "records"
)

// Escalates returns true if failures in the lane must be surfaced to the
// invocation layer so delivery retry can re-run the cleanup.
func (l Lane) Escalates() bool {
	return l == LaneDiscovery || l == LaneRecords
}

// ResultStatus is the state of a single cleanup step.
type ResultStatus string

// Result statuses.
const (
	StatusSucceeded ResultStatus = "succeeded"
	StatusFailed    ResultStatus = "failed"
	StatusSkipped   ResultStatus = "skipped"
)

// ActionResult is the result of one cleanup step.
type ActionResult struct {
	// Action is the step label, see CleanupAction.Name.
	Action string

	// Lane is the lane that ran the step.
	Lane Lane

	// Status is the final state of the step.
	Status ResultStatus

	// Count is the number of records found or removed, or objects removed.
	Count int

	// Err is set when Status is StatusFailed.
	Err error
}

// Failed returns true if the step failed.
func (r ActionResult) Failed() bool {
	return r.Status == StatusFailed
}

// CleanupOutcome aggregates the results of one invocation.
type CleanupOutcome struct {
	// EntityID identifies the deleted entity.
	EntityID string

	// InvocationID correlates log lines of one invocation.
	InvocationID string

	// Skipped is true when the event carried no snapshot.
	Skipped bool

	// SkipReason explains a skipped invocation. It is not a failure.
	SkipReason error

	// Results are the per-step results.
	Results []ActionResult

	// RecordsDeleted is the number of records removed by committed batches.
	RecordsDeleted int

	// BatchesCommitted is the number of successful batch commits.
	BatchesCommitted int

	// Duration is the wall time of the invocation.
	Duration time.Duration
}

// Add appends step results.
func (o *CleanupOutcome) Add(results ...ActionResult) {
	o.Results = append(o.Results, results...)
}

// Failures returns every failed step, including best-effort ones.
func (o *CleanupOutcome) Failures() []ActionResult {
	var failed []ActionResult
	for _, r := range o.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err returns the joined errors of failed steps in escalating lanes,
// or nil if the invocation must be reported as successful.
func (o *CleanupOutcome) Err() error {
	var errs []error
	for _, r := range o.Results {
		if r.Failed() && r.Lane.Escalates() {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Succeeded returns true if no escalating step failed.
func (o *CleanupOutcome) Succeeded() bool {
	return o.Err() == nil
}
