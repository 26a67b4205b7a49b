package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

// snapshotFlags describe the deleted document on the command line.
type snapshotFlags struct {
	file   string
	author string
	kind   string
	image  string
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "snapshot", "s", "", "JSON file with the deleted document's fields (- for stdin)")
	cmd.Flags().StringVar(&f.author, "author", "", "author (owner) ID of the deleted document")
	cmd.Flags().StringVar(&f.kind, "type", "", "content type of the deleted document, e.g. Book")
	cmd.Flags().StringVar(&f.image, "image", "", "image URL of the deleted document")
}

// build returns the snapshot described by the flags, or nil when no flag
// was given. Field flags override values read from the file.
func (f *snapshotFlags) build(stdin io.Reader) (map[string]any, error) {
	var snapshot map[string]any

	if f.file != "" {
		data, err := readInput(f.file, stdin)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", f.file, err)
		}
		if snapshot == nil {
			snapshot = map[string]any{}
		}
	}

	overrides := map[string]string{
		domain.FieldAuthorID:    f.author,
		domain.FieldContentType: f.kind,
		domain.FieldImageURL:    f.image,
	}
	for field, value := range overrides {
		if value == "" {
			continue
		}
		if snapshot == nil {
			snapshot = map[string]any{}
		}
		snapshot[field] = value
	}
	return snapshot, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
