package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/adapters/driving/webhook"
	"github.com/custodia-labs/cascade/internal/core/domain"
)

var deleteJSON bool

var deleteCmd = &cobra.Command{
	Use:   "delete [content-id]",
	Short: "Delete a content document and clean up after it",
	Long: `Deletes publicContent/{content-id} from the configured store, then runs
the cleanup with the document as it was before deletion.

A document that does not exist is treated as an event without data.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteJSON, "json", false, "output the outcome as JSON")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if cleanupService == nil {
		return notConfigured("cleanup service")
	}
	if documentStore == nil {
		return notConfigured("document store")
	}

	id := args[0]
	if !domain.ValidSegment(id) {
		return fmt.Errorf("%w: content id %q", domain.ErrInvalidInput, id)
	}
	ctx := cmd.Context()
	path := domain.ContentPath(id)

	var snapshot map[string]any
	record, err := documentStore.Get(ctx, path)
	switch {
	case err == nil:
		snapshot = record.Fields
		if snapshot == nil {
			snapshot = map[string]any{}
		}
	case errors.Is(err, domain.ErrNotFound):
		log.Warn("Content document not found", "path", path)
	default:
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := documentStore.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	outcome, err := cleanupService.HandleDeletion(ctx, id, snapshot)
	if outcome == nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if deleteJSON {
		if jerr := outputJSON(cmd, webhook.NewOutcomeReport(outcome)); jerr != nil {
			return jerr
		}
	} else {
		cmd.Printf("Deleted %s\n", path)
		printOutcome(cmd, outcome)
	}

	if err != nil {
		return fmt.Errorf("cleanup incomplete: %w", err)
	}
	return nil
}
