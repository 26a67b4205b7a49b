package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the backend, batching, Google API access, logging,
and the webhook server.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. The value is validated together with the
rest of the configuration before it is kept.

Omit the value of firestore.access_token to be prompted for it without echo.

Keys:
  backend                       memory, sqlite or firestore
  batch.limit                   deletes per commit (1-500)
  sqlite.data_dir               directory of the SQLite database
  firestore.project             Google Cloud project ID
  firestore.database            Firestore database ID
  firestore.endpoint            Firestore API endpoint override
  firestore.credentials_file    service account key file
  firestore.access_token        static OAuth2 access token
  firestore.emulator            true to disable authentication
  storage.bucket                default bucket for image URLs without one
  storage.endpoint              Cloud Storage API endpoint override
  google.requests_per_second    client-side Google API rate limit
  google.burst                  client-side Google API burst size
  log.level                     debug, info, warn or error
  log.format                    json or console
  server.port                   webhook port`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Cleanup]")
	cmd.Printf("  Backend: %s\n", settings.Backend)
	cmd.Printf("  Batch limit: %d\n", settings.BatchLimit)
	cmd.Println()

	switch settings.Backend {
	case domain.BackendSQLite:
		cmd.Println("[SQLite]")
		cmd.Printf("  Data dir: %s\n", valueOrDefault(settings.SQLite.DataDir, "~/.cascade/data"))
		cmd.Println()
	case domain.BackendFirestore:
		cmd.Println("[Firestore]")
		cmd.Printf("  Database: %s\n", settings.Firestore.DatabaseName())
		if settings.Firestore.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", settings.Firestore.Endpoint)
		}
		switch {
		case settings.Firestore.Emulator:
			cmd.Println("  Auth: none (emulator)")
		case settings.Firestore.AccessToken != "":
			cmd.Printf("  Auth: access token %s\n", maskToken(settings.Firestore.AccessToken))
		case settings.Firestore.CredentialsFile != "":
			cmd.Printf("  Auth: %s\n", settings.Firestore.CredentialsFile)
		default:
			cmd.Println("  Auth: application default credentials")
		}
		cmd.Println()

		cmd.Println("[Storage]")
		cmd.Printf("  Default bucket: %s\n", valueOrDefault(settings.Storage.Bucket, "(not set)"))
		if settings.Storage.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", settings.Storage.Endpoint)
		}
		cmd.Printf("  Rate limit: %.1f req/s, burst %d\n",
			settings.Google.RequestsPerSecond, settings.Google.Burst)
		cmd.Println()
	}

	cmd.Println("[Logging]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	cmd.Printf("  Format: %s\n", settings.Log.Format)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	key := args[0]
	if len(args) == 1 {
		if _, ok := secretKeys[key]; !ok {
			return fmt.Errorf("missing value for %s", key)
		}
		secret, err := readSecret(cmd, key)
		if err != nil {
			return err
		}
		if err := settingsService.Set(key, secret); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		cmd.Printf("%s = %s\n", key, maskToken(secret))
		return nil
	}

	raw := args[1]
	if err := settingsService.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

// secretKeys are settings that can be entered without echo.
var secretKeys = map[string]struct{}{
	"firestore.access_token": {},
}

// readSecret prompts for a secret value. On a terminal the input is not
// echoed; otherwise a single line is read from the command's input.
func readSecret(cmd *cobra.Command, key string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Printf("%s: ", key)
		secret, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", key, err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	secret := strings.TrimSpace(line)
	if secret == "" {
		return "", fmt.Errorf("empty value for %s", key)
	}
	return secret, nil
}

// parseValue converts a command-line value to the type the config store keeps.
func parseValue(raw string) any {
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
