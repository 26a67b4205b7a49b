package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFlags_Build(t *testing.T) {
	tests := []struct {
		name  string
		flags snapshotFlags
		stdin string
		want  map[string]any
	}{
		{
			name: "no flags",
			want: nil,
		},
		{
			name:  "field flags",
			flags: snapshotFlags{author: "u1", kind: "Book"},
			want:  map[string]any{"authorId": "u1", "contentType": "Book"},
		},
		{
			name:  "stdin",
			flags: snapshotFlags{file: "-"},
			stdin: `{"authorId": "u1", "pages": 12}`,
			want:  map[string]any{"authorId": "u1", "pages": float64(12)},
		},
		{
			name:  "flags override file",
			flags: snapshotFlags{file: "-", image: "gs://b/i.png"},
			stdin: `{"imageUrl": "gs://b/old.png"}`,
			want:  map[string]any{"imageUrl": "gs://b/i.png"},
		},
		{
			name:  "null document",
			flags: snapshotFlags{file: "-"},
			stdin: `null`,
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.build(strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotFlags_BuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b1.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ownerId": "u7"}`), 0o600))

	flags := snapshotFlags{file: path}
	got, err := flags.build(nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ownerId": "u7"}, got)
}

func TestSnapshotFlags_MissingFile(t *testing.T) {
	flags := snapshotFlags{file: filepath.Join(t.TempDir(), "missing.json")}

	_, err := flags.build(nil)

	require.Error(t, err)
}
