package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printOutcome(cmd *cobra.Command, outcome *domain.CleanupOutcome) {
	if outcome.Skipped {
		cmd.Printf("No data for %s, nothing to clean up.\n", outcome.EntityID)
		return
	}

	status := "complete"
	if !outcome.Succeeded() {
		status = "incomplete"
	}
	cmd.Printf("Cleanup %s for %s\n", status, outcome.EntityID)
	cmd.Printf("  Invocation: %s\n", outcome.InvocationID)
	cmd.Printf("  Records deleted: %d in %d batch(es)\n", outcome.RecordsDeleted, outcome.BatchesCommitted)
	cmd.Printf("  Duration: %s\n", outcome.Duration)

	failures := outcome.Failures()
	if len(failures) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("Failures:")
	for _, f := range failures {
		cmd.Printf("  [%s] %s: %v\n", f.Lane, f.Action, f.Err)
	}
}

// planReport is the JSON form of a resolved plan.
type planReport struct {
	ContentID string         `json:"contentId"`
	Object    string         `json:"object,omitempty"`
	ObjectErr string         `json:"objectError,omitempty"`
	Records   []planRecord   `json:"records"`
	Failures  []planFailure  `json:"failures,omitempty"`
	Counts    map[string]int `json:"counts"`
}

type planRecord struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type planFailure struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

func newPlanReport(plan *domain.CleanupPlan) planReport {
	report := planReport{
		ContentID: plan.EntityID,
		Records:   make([]planRecord, 0, len(plan.Records)),
		Counts:    make(map[string]int),
	}
	if obj := plan.ObjectRemoval(); obj != nil {
		if obj.LocatorErr != nil {
			report.ObjectErr = obj.LocatorErr.Error()
		} else {
			report.Object = obj.Object.String()
		}
	}
	for _, ref := range plan.Records {
		report.Records = append(report.Records, planRecord{Path: ref.Path, Reason: string(ref.Reason)})
	}
	for reason, n := range plan.CountByReason() {
		report.Counts[string(reason)] = n
	}
	for _, f := range plan.Failures {
		report.Failures = append(report.Failures, planFailure{Action: f.Action, Error: f.Err.Error()})
	}
	return report
}

func printPlan(cmd *cobra.Command, plan *domain.CleanupPlan) {
	report := newPlanReport(plan)

	cmd.Printf("Cleanup plan for %s\n", report.ContentID)
	cmd.Println()

	switch {
	case report.ObjectErr != "":
		cmd.Printf("Object: cannot remove (%s)\n", report.ObjectErr)
	case report.Object != "":
		cmd.Printf("Object: %s\n", report.Object)
	default:
		cmd.Println("Object: none")
	}

	if len(report.Records) == 0 {
		cmd.Println("Records: none")
	} else {
		cmd.Printf("Records (%d):\n", len(report.Records))
		for _, r := range report.Records {
			cmd.Printf("  %-18s %s\n", r.Reason, r.Path)
		}
		cmd.Println()
		for _, reason := range slices.Sorted(maps.Keys(report.Counts)) {
			cmd.Printf("  %s: %d\n", reason, report.Counts[reason])
		}
	}

	if len(report.Failures) > 0 {
		cmd.Println()
		cmd.Println("Discovery failures:")
		for _, f := range report.Failures {
			cmd.Printf("  %s: %s\n", f.Action, f.Error)
		}
	}
}

