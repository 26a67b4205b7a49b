package webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// maxEventBytes bounds the size of an event body.
const maxEventBytes = 1 << 20

// FailureReport describes one failed cleanup step.
type FailureReport struct {
	Action string `json:"action"`
	Lane   string `json:"lane"`
	Error  string `json:"error"`
}

// OutcomeReport is the JSON body returned for a handled event.
type OutcomeReport struct {
	ContentID        string          `json:"contentId"`
	InvocationID     string          `json:"invocationId,omitempty"`
	Skipped          bool            `json:"skipped,omitempty"`
	Succeeded        bool            `json:"succeeded"`
	RecordsDeleted   int             `json:"recordsDeleted"`
	BatchesCommitted int             `json:"batchesCommitted"`
	Failures         []FailureReport `json:"failures,omitempty"`
	DurationMillis   int64           `json:"durationMs"`
}

// NewOutcomeReport summarises an outcome.
func NewOutcomeReport(outcome *domain.CleanupOutcome) OutcomeReport {
	report := OutcomeReport{
		ContentID:        outcome.EntityID,
		InvocationID:     outcome.InvocationID,
		Skipped:          outcome.Skipped,
		Succeeded:        outcome.Succeeded(),
		RecordsDeleted:   outcome.RecordsDeleted,
		BatchesCommitted: outcome.BatchesCommitted,
		DurationMillis:   outcome.Duration.Milliseconds(),
	}
	for _, f := range outcome.Failures() {
		report.Failures = append(report.Failures, FailureReport{
			Action: f.Action,
			Lane:   string(f.Lane),
			Error:  f.Err.Error(),
		})
	}
	return report
}

type errorBody struct {
	Error string `json:"error"`
}

// handleContentDeleted runs the cleanup for one deletion event.
//
// The status tells the delivery layer whether to redeliver: 200 when the
// record lanes succeeded (object failures are best-effort), 500 when a
// discovery or commit failure left work behind, 400 for events that will
// never succeed.
func (s *Server) handleContentDeleted(w http.ResponseWriter, r *http.Request) {
	event, err := DecodeEvent(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		s.log.Warn("Rejected event", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	id, err := event.EntityID()
	if err != nil {
		s.log.Warn("Rejected event", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	outcome, err := s.ports.Cleanup.HandleDeletion(r.Context(), id, event.Snapshot())
	if outcome == nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, NewOutcomeReport(outcome))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
