package driving

import "github.com/custodia-labs/cascade/internal/core/domain"

// SettingsService manages coordinator settings.
type SettingsService interface {
	// Get retrieves current settings, filling defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set stores a single setting by key after validating the result.
	Set(key string, value any) error
}
