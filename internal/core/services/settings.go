package services

import (
	"fmt"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackend              = "backend"
	keyBatchLimit           = "batch.limit"
	keySQLiteDataDir        = "sqlite.data_dir"
	keyFirestoreProject     = "firestore.project"
	keyFirestoreDatabase    = "firestore.database"
	keyFirestoreEndpoint    = "firestore.endpoint"
	keyFirestoreCredentials = "firestore.credentials_file"
	keyFirestoreToken       = "firestore.access_token"
	keyFirestoreEmulator    = "firestore.emulator"
	keyStorageBucket        = "storage.bucket"
	keyStorageEndpoint      = "storage.endpoint"
	keyGoogleRPS            = "google.requests_per_second"
	keyGoogleBurst          = "google.burst"
	keyLogLevel             = "log.level"
	keyLogFormat            = "log.format"
	keyServerPort           = "server.port"
)

var knownKeys = map[string]struct{}{
	keyBackend: {}, keyBatchLimit: {}, keySQLiteDataDir: {},
	keyFirestoreProject: {}, keyFirestoreDatabase: {}, keyFirestoreEndpoint: {},
	keyFirestoreCredentials: {}, keyFirestoreToken: {}, keyFirestoreEmulator: {},
	keyStorageBucket: {}, keyStorageEndpoint: {}, keyGoogleRPS: {}, keyGoogleBurst: {},
	keyLogLevel: {}, keyLogFormat: {}, keyServerPort: {},
}

// SettingsService manages coordinator settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, filling defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.Settings{
		Backend:    domain.Backend(s.getString(keyBackend, defaults.Backend.String())),
		BatchLimit: s.getInt(keyBatchLimit, defaults.BatchLimit),
		SQLite: domain.SQLiteSettings{
			DataDir: s.configStore.GetString(keySQLiteDataDir),
		},
		Firestore: domain.FirestoreSettings{
			ProjectID:       s.configStore.GetString(keyFirestoreProject),
			DatabaseID:      s.getString(keyFirestoreDatabase, defaults.Firestore.DatabaseID),
			Endpoint:        s.configStore.GetString(keyFirestoreEndpoint),
			CredentialsFile: s.configStore.GetString(keyFirestoreCredentials),
			AccessToken:     s.configStore.GetString(keyFirestoreToken),
			Emulator:        s.configStore.GetBool(keyFirestoreEmulator),
		},
		Storage: domain.StorageSettings{
			Bucket:   s.configStore.GetString(keyStorageBucket),
			Endpoint: s.configStore.GetString(keyStorageEndpoint),
		},
		Google: domain.GoogleSettings{
			RequestsPerSecond: s.getFloat(keyGoogleRPS, defaults.Google.RequestsPerSecond),
			Burst:             s.getInt(keyGoogleBurst, defaults.Google.Burst),
		},
		Log: domain.LogSettings{
			Level:  s.getString(keyLogLevel, defaults.Log.Level),
			Format: s.getString(keyLogFormat, defaults.Log.Format),
		},
		Server: domain.ServerSettings{
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set stores a single setting by key. The previous value is restored if the
// resulting settings do not validate.
func (s *SettingsService) Set(key string, value any) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if _, err := s.Get(); err != nil {
		if existed {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Unset(key)
		}
		return err
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetFloat(key)
}
