package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Load documents into the configured store",
	Long: `Writes documents from a JSON file into the configured store, replacing
existing documents at the same paths. Use - to read from stdin.

The file maps document paths to their fields:
  {
    "publicContent/b1": {"authorId": "u1", "contentType": "Book"},
    "publicContent/b1/comments/c1": {"text": "great"},
    "users/u2/savedBooks/s1": {"bookId": "b1"}
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if documentWriter == nil {
		return notConfigured("document writer")
	}

	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	var docs map[string]map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	for _, path := range slices.Sorted(maps.Keys(docs)) {
		if err := documentWriter.PutDocument(ctx, path, docs[path]); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	cmd.Printf("Imported %d documents\n", len(docs))
	return nil
}
