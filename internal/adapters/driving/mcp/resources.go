package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for cascade resources.
	uriScheme = "cascade://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current backend, batching and logging configuration",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// Plan for content that still exists, read from the store.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "content/{contentId}/plan",
		Name:        "content-plan",
		Description: "What deleting a content document would remove",
		MIMEType:    "application/json",
	}, s.handlePlanResource)
}

// handleSettingsResource returns the current settings without secrets.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	type settingsInfo struct {
		Backend    string `json:"backend"`
		BatchLimit int    `json:"batch_limit"`
		Database   string `json:"database,omitempty"`
		Bucket     string `json:"bucket,omitempty"`
		LogLevel   string `json:"log_level"`
	}

	info := settingsInfo{
		Backend:    settings.Backend.String(),
		BatchLimit: settings.BatchLimit,
		LogLevel:   settings.Log.Level,
	}
	if settings.Backend == domain.BackendFirestore {
		info.Database = settings.Firestore.DatabaseName()
		info.Bucket = settings.Storage.Bucket
	}

	return jsonResult(req.Params.URI, info)
}

// handlePlanResource resolves the cleanup plan for a stored content document.
func (s *Server) handlePlanResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract contentId from URI: cascade://content/{contentId}/plan
	contentID := extractContentID(req.Params.URI)
	if !domain.ValidSegment(contentID) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Documents.Get(ctx, domain.ContentPath(contentID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	entity, err := domain.EntityFromSnapshot(contentID, record.Fields)
	if err != nil {
		return nil, err
	}
	plan, err := s.ports.Cleanup.Plan(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("planning cleanup: %w", err)
	}

	return jsonResult(req.Params.URI, newPlanOutput(plan))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractContentID extracts the content ID from a URI like cascade://content/{contentId}/plan.
func extractContentID(uri string) string {
	const prefix = uriScheme + "content/"
	const suffix = "/plan"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
