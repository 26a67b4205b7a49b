package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/adapters/driving/webhook"
	"github.com/custodia-labs/cascade/internal/core/domain"
)

var bookDependents = []string{
	"publicContent/b1/comments/c1",
	"publicContent/b1/comments/c2",
	"publicContent/b1/comments/c3",
	"users/u2/savedBooks/s1",
	"users/u3/trackedBooks/t1",
	"users/u1/content/b1",
}

func TestCleanupCmd_Use(t *testing.T) {
	assert.Equal(t, "cleanup [content-id]", cleanupCmd.Use)
}

func TestCleanupCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "cleanup")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestCleanupCmd_Book(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "cleanup", "b1",
		"--author", "u1", "--type", "Book", "--image", "https://store/o/images%2Fb1.png?token=x")

	require.NoError(t, err)
	assert.Contains(t, out, "Cleanup complete for b1")
	assert.Contains(t, out, "Records deleted: 6 in 1 batch(es)")
	for _, path := range bookDependents {
		assert.False(t, env.docs.Exists(path), path)
	}
	assert.True(t, env.docs.Exists("users/u3/savedBooks/s2"))
	assert.True(t, env.docs.Exists("publicContent/b1"))
	assert.False(t, env.objects.Exists(domain.ObjectLocator{Path: "images/b1.png"}))
}

func TestCleanupCmd_NoSnapshot(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "cleanup", "b1")

	require.NoError(t, err)
	assert.Contains(t, out, "No data for b1")
	assert.Equal(t, 8, env.docs.Len())
}

func TestCleanupCmd_SnapshotFromStdin(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, `{"authorId": "u1", "contentType": "Book"}`,
		"cleanup", "b1", "--snapshot", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Records deleted: 6")
	assert.True(t, env.objects.Exists(domain.ObjectLocator{Path: "images/b1.png"}))
}

func TestCleanupCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "cleanup", "b1", "--author", "u1", "--json")
	require.NoError(t, err)

	var report webhook.OutcomeReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "b1", report.ContentID)
	assert.True(t, report.Succeeded)
	assert.Equal(t, 4, report.RecordsDeleted)
	assert.Equal(t, 1, report.BatchesCommitted)
}

func TestCleanupCmd_MalformedImageIsBestEffort(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "cleanup", "b1", "--author", "u1", "--image", "not a url")

	require.NoError(t, err)
	assert.Contains(t, out, "Cleanup complete for b1")
	assert.Contains(t, out, "Failures:")
	assert.Contains(t, out, "[object]")
	assert.False(t, env.docs.Exists("users/u1/content/b1"))
}

func TestCleanupCmd_InvalidSnapshotFile(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "{broken", "cleanup", "b1", "--snapshot", "-")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse snapshot")
}

func TestCleanupCmd_NotConfigured(t *testing.T) {
	clearServices(t)

	_, err := executeCommand(t, "", "cleanup", "b1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup service not configured")
}
