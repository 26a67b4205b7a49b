package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// ContentInput describes a deleted content document.
type ContentInput struct {
	ContentID   string `json:"content_id" jsonschema:"ID of the deleted publicContent document"`
	AuthorID    string `json:"author_id,omitempty" jsonschema:"author of the document; enables removal of the private copy"`
	ContentType string `json:"content_type,omitempty" jsonschema:"content type, e.g. Book; Book also removes saved and tracked references"`
	ImageURL    string `json:"image_url,omitempty" jsonschema:"image URL of the document; the image is removed from storage"`
}

func (in ContentInput) snapshot() map[string]any {
	snapshot := map[string]any{}
	if in.AuthorID != "" {
		snapshot[domain.FieldAuthorID] = in.AuthorID
	}
	if in.ContentType != "" {
		snapshot[domain.FieldContentType] = in.ContentType
	}
	if in.ImageURL != "" {
		snapshot[domain.FieldImageURL] = in.ImageURL
	}
	return snapshot
}

// PlanOutput is the output schema for the plan_cleanup tool.
type PlanOutput struct {
	ContentID string          `json:"content_id"`
	Object    string          `json:"object,omitempty"`
	Records   []RecordOutput  `json:"records"`
	Count     int             `json:"count"`
	Failures  []FailureOutput `json:"failures,omitempty"`
}

// RecordOutput is one dependent record.
type RecordOutput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FailureOutput is one failed step.
type FailureOutput struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

// CleanupOutput is the output schema for the run_cleanup tool.
type CleanupOutput struct {
	ContentID        string          `json:"content_id"`
	InvocationID     string          `json:"invocation_id"`
	Succeeded        bool            `json:"succeeded"`
	RecordsDeleted   int             `json:"records_deleted"`
	BatchesCommitted int             `json:"batches_committed"`
	Failures         []FailureOutput `json:"failures,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_cleanup",
		Description: "List the records and image that would be removed for a deleted content document",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_cleanup",
		Description: "Remove every record and image that depends on a deleted content document",
	}, s.handleCleanup)
}

// handlePlan handles the plan_cleanup tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContentInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	entity, err := domain.EntityFromSnapshot(input.ContentID, input.snapshot())
	if err != nil {
		return nil, PlanOutput{}, err
	}

	plan, err := s.ports.Cleanup.Plan(ctx, entity)
	if err != nil {
		return nil, PlanOutput{}, fmt.Errorf("planning cleanup: %w", err)
	}

	return nil, newPlanOutput(plan), nil
}

// handleCleanup handles the run_cleanup tool invocation.
func (s *Server) handleCleanup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContentInput,
) (*mcp.CallToolResult, CleanupOutput, error) {
	outcome, err := s.ports.Cleanup.HandleDeletion(ctx, input.ContentID, input.snapshot())
	if outcome == nil {
		return nil, CleanupOutput{}, err
	}

	output := CleanupOutput{
		ContentID:        outcome.EntityID,
		InvocationID:     outcome.InvocationID,
		Succeeded:        outcome.Succeeded(),
		RecordsDeleted:   outcome.RecordsDeleted,
		BatchesCommitted: outcome.BatchesCommitted,
	}
	for _, f := range outcome.Failures() {
		output.Failures = append(output.Failures, FailureOutput{Action: f.Action, Error: f.Err.Error()})
	}

	// Incomplete cleanups are reported in the output, not as a tool error.
	return nil, output, nil
}

func newPlanOutput(plan *domain.CleanupPlan) PlanOutput {
	output := PlanOutput{
		ContentID: plan.EntityID,
		Records:   make([]RecordOutput, len(plan.Records)),
		Count:     len(plan.Records),
	}
	if obj := plan.ObjectRemoval(); obj != nil {
		if obj.LocatorErr != nil {
			output.Failures = append(output.Failures, FailureOutput{Action: obj.Name(), Error: obj.LocatorErr.Error()})
		} else {
			output.Object = obj.Object.String()
		}
	}
	for i, ref := range plan.Records {
		output.Records[i] = RecordOutput{Path: ref.Path, Reason: string(ref.Reason)}
	}
	for _, f := range plan.Failures {
		output.Failures = append(output.Failures, FailureOutput{Action: f.Action, Error: f.Err.Error()})
	}
	return output
}
