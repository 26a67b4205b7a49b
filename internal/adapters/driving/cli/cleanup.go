package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/adapters/driving/webhook"
)

var (
	cleanupSnapshot snapshotFlags
	cleanupJSON     bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [content-id]",
	Short: "Run the cleanup for an already deleted document",
	Long: `Runs the cascade cleanup for a publicContent document that has already
been deleted, as if its deletion event had been delivered.

The deleted document is described with --snapshot or the field flags.
Without either, the event carries no data and nothing is cleaned up.

Examples:
  cascade cleanup b1 --author u1 --type Book --image 'https://host/o/images%2Fb1.png'
  cascade cleanup b1 --snapshot b1.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCleanup,
}

func init() {
	cleanupSnapshot.register(cleanupCmd)
	cleanupCmd.Flags().BoolVar(&cleanupJSON, "json", false, "output the outcome as JSON")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if cleanupService == nil {
		return notConfigured("cleanup service")
	}

	snapshot, err := cleanupSnapshot.build(cmd.InOrStdin())
	if err != nil {
		return err
	}

	outcome, err := cleanupService.HandleDeletion(cmd.Context(), args[0], snapshot)
	if outcome == nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if cleanupJSON {
		if jerr := outputJSON(cmd, webhook.NewOutcomeReport(outcome)); jerr != nil {
			return jerr
		}
	} else {
		printOutcome(cmd, outcome)
	}

	if err != nil {
		return fmt.Errorf("cleanup incomplete: %w", err)
	}
	return nil
}
