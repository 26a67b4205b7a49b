package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

func succeededOutcome() *domain.CleanupOutcome {
	outcome := &domain.CleanupOutcome{
		EntityID:         "b1",
		RecordsDeleted:   5,
		BatchesCommitted: 1,
		Duration:         120 * time.Millisecond,
	}
	outcome.Add(
		domain.ActionResult{Action: "remove-object", Lane: domain.LaneObject, Status: domain.StatusSucceeded, Count: 1},
		domain.ActionResult{Action: "commit-deletes", Lane: domain.LaneRecords, Status: domain.StatusSucceeded, Count: 5},
	)
	return outcome
}

func TestPrometheusRecorder_RecordOutcome(t *testing.T) {
	r := NewPrometheusRecorder(prometheus.NewRegistry())

	r.RecordOutcome(succeededOutcome())
	r.RecordOutcome(succeededOutcome())

	assert.InDelta(t, 2, testutil.ToFloat64(r.invocations.WithLabelValues(resultSucceeded)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.steps.WithLabelValues("object", "succeeded")), 0)
	assert.InDelta(t, 10, testutil.ToFloat64(r.recordsDeleted), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.batches), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestPrometheusRecorder_Incomplete(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	outcome := &domain.CleanupOutcome{EntityID: "b1"}
	outcome.Add(domain.ActionResult{
		Action: "commit-deletes",
		Lane:   domain.LaneRecords,
		Status: domain.StatusFailed,
		Err:    domain.ErrBatchCommitFailed,
	})

	r.RecordOutcome(outcome)

	assert.InDelta(t, 1, testutil.ToFloat64(r.invocations.WithLabelValues(resultIncomplete)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.steps.WithLabelValues("records", "failed")), 0)
}

func TestPrometheusRecorder_SkippedAndNil(t *testing.T) {
	r := NewPrometheusRecorder(nil)

	r.RecordOutcome(nil)
	r.RecordOutcome(&domain.CleanupOutcome{EntityID: "b1", Skipped: true})

	assert.InDelta(t, 1, testutil.ToFloat64(r.invocations.WithLabelValues(resultSkipped)), 0)
	assert.Zero(t, testutil.CollectAndCount(r.steps))
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	r.RecordOutcome(succeededOutcome())

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cascade_records_deleted_total 5")
	assert.Contains(t, rec.Body.String(), `cascade_invocations_total{result="succeeded"} 1`)
}
