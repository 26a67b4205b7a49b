// Package cli provides the cascade command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/core/ports/driving"
	"github.com/custodia-labs/cascade/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the global flags passed to the bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory (~/.cascade).
	ConfigDir string

	// Verbose forces debug logging.
	Verbose bool
}

// Services are the wired ports the commands run against.
type Services struct {
	Cleanup  driving.CleanupService
	Settings driving.SettingsService

	// Documents backs the local delete trigger.
	Documents driven.DocumentStore

	// Writer seeds documents. Nil when the backend is read-only.
	Writer driven.DocumentWriter

	// Metrics is served by the webhook when set.
	Metrics http.Handler

	Log logger.Logger
}

// BootstrapFunc wires the services for the configured backend.
// It may return partially filled services alongside an error, e.g. settings
// without stores when the backend cannot be reached.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	bootstrap    BootstrapFunc
	bootstrapErr error
	globalOpts   Options

	cleanupService  driving.CleanupService
	settingsService driving.SettingsService
	documentStore   driven.DocumentStore
	documentWriter  driven.DocumentWriter
	metricsHandler  http.Handler
	log             = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Cascade-delete coordinator for published content",
	Long: `cascade removes everything that depends on a deleted publicContent document:
its comments, saved and tracked book references, the owner's private copy,
and the image it references in object storage.

Run it as a webhook receiving document deletion events, or trigger a
cleanup directly from the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigDir, "config-dir", "",
		"configuration directory (default ~/.cascade)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap installs the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	if bootstrap == nil {
		return nil
	}
	services, err := bootstrap(globalOpts)
	bootstrapErr = err
	if services != nil {
		setServices(services)
	}
	return nil
}

func setServices(s *Services) {
	cleanupService = s.Cleanup
	settingsService = s.Settings
	documentStore = s.Documents
	documentWriter = s.Writer
	metricsHandler = s.Metrics
	if s.Log != nil {
		log = s.Log
	}
}

// notConfigured reports a missing service, including the wiring error if any.
func notConfigured(name string) error {
	if bootstrapErr != nil {
		return fmt.Errorf("%s not configured: %w", name, bootstrapErr)
	}
	return errors.New(name + " not configured")
}
