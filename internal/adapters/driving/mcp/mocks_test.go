package mcp

import (
	"context"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driving"
)

// mockCleanupService is a mock implementation of driving.CleanupService.
type mockCleanupService struct {
	plan     *domain.CleanupPlan
	outcome  *domain.CleanupOutcome
	err      error
	entity   *domain.DeletedEntity
	snapshot map[string]any
}

var _ driving.CleanupService = (*mockCleanupService)(nil)

func (m *mockCleanupService) HandleDeletion(
	_ context.Context,
	_ string,
	snapshot map[string]any,
) (*domain.CleanupOutcome, error) {
	m.snapshot = snapshot
	return m.outcome, m.err
}

func (m *mockCleanupService) Plan(_ context.Context, entity *domain.DeletedEntity) (*domain.CleanupPlan, error) {
	m.entity = entity
	if m.plan == nil && m.err == nil {
		return domain.NewCleanupPlan(entity.ID, nil), nil
	}
	return m.plan, m.err
}

func (m *mockCleanupService) Execute(_ context.Context, _ *domain.CleanupPlan) (*domain.CleanupOutcome, error) {
	return m.outcome, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(_ string, _ any) error {
	return m.err
}
