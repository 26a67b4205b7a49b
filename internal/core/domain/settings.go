package domain

import (
	"fmt"
	"strings"
)

// Backend identifies which stores the coordinator runs against.
type Backend string

// Available backends.
const (
	// BackendMemory keeps documents and objects in process memory.
	BackendMemory Backend = "memory"

	// BackendSQLite keeps documents and objects in a local SQLite database.
	BackendSQLite Backend = "sqlite"

	// BackendFirestore uses Cloud Firestore and Cloud Storage.
	BackendFirestore Backend = "firestore"
)

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendSQLite, BackendFirestore:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b Backend) String() string {
	return string(b)
}

// MaxBatchLimit is the largest number of writes Firestore accepts in one commit.
const MaxBatchLimit = 500

// DefaultDatabaseID is the Firestore database used when none is configured.
const DefaultDatabaseID = "(default)"

// Settings holds coordinator configuration.
type Settings struct {
	Backend    Backend
	BatchLimit int
	SQLite     SQLiteSettings
	Firestore  FirestoreSettings
	Storage    StorageSettings
	Google     GoogleSettings
	Log        LogSettings
	Server     ServerSettings
}

// SQLiteSettings configures the local SQLite backend.
type SQLiteSettings struct {
	// DataDir holds the database file. Empty means ~/.cascade/data.
	DataDir string
}

// FirestoreSettings configures the Firestore document store.
type FirestoreSettings struct {
	ProjectID       string
	DatabaseID      string
	Endpoint        string
	CredentialsFile string

	// AccessToken is a static OAuth2 token, used instead of default credentials.
	AccessToken string

	// Emulator disables authentication for the local emulator.
	Emulator bool
}

// StorageSettings configures the Cloud Storage object store.
type StorageSettings struct {
	// Bucket is used for media references that do not name a bucket.
	Bucket   string
	Endpoint string
}

// GoogleSettings configures client-side rate limiting of Google APIs.
type GoogleSettings struct {
	RequestsPerSecond float64
	Burst             int
}

// LogSettings configures structured logging.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is json or console.
	Format string
}

// ServerSettings configures the webhook server.
type ServerSettings struct {
	Port int
}

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{
		Backend:    BackendMemory,
		BatchLimit: MaxBatchLimit,
		Firestore: FirestoreSettings{
			DatabaseID: DefaultDatabaseID,
		},
		Google: GoogleSettings{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
		},
		Server: ServerSettings{
			Port: 8080,
		},
	}
}

// Validate checks the settings are usable for the configured backend.
func (s *Settings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidInput, s.Backend)
	}
	if s.BatchLimit < 1 || s.BatchLimit > MaxBatchLimit {
		return fmt.Errorf("%w: batch limit must be between 1 and %d, got %d",
			ErrInvalidInput, MaxBatchLimit, s.BatchLimit)
	}
	if s.Backend == BackendFirestore && strings.TrimSpace(s.Firestore.ProjectID) == "" {
		return fmt.Errorf("%w: firestore backend requires firestore.project", ErrInvalidInput)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidInput, s.Log.Level)
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidInput, s.Log.Format)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid server port %d", ErrInvalidInput, s.Server.Port)
	}
	return nil
}

// DatabaseName returns the Firestore database resource name.
func (f FirestoreSettings) DatabaseName() string {
	database := f.DatabaseID
	if database == "" {
		database = DefaultDatabaseID
	}
	return "projects/" + f.ProjectID + "/databases/" + database
}
