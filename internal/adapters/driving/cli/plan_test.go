package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCmd_Table(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "plan", "b1",
		"--author", "u1", "--type", "Book", "--image", "https://store/o/images%2Fb1.png?token=x")

	require.NoError(t, err)
	assert.Contains(t, out, "Cleanup plan for b1")
	assert.Contains(t, out, "Object: images/b1.png")
	assert.Contains(t, out, "Records (6):")
	assert.Contains(t, out, "users/u2/savedBooks/s1")
	assert.Contains(t, out, "comment: 3")
	assert.NotContains(t, out, "users/u3/savedBooks/s2")
	assert.Equal(t, 8, env.docs.Len())
}

func TestPlanCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "plan", "b1", "--type", "Book", "--json")
	require.NoError(t, err)

	var report planReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "b1", report.ContentID)
	assert.Empty(t, report.Object)
	assert.Len(t, report.Records, 5)
	assert.Equal(t, map[string]int{"comment": 3, "saved-reference": 1, "tracked-reference": 1}, report.Counts)
}

func TestPlanCmd_MalformedImage(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "plan", "b1", "--image", "https://store/no-object")

	require.NoError(t, err)
	assert.Contains(t, out, "Object: cannot remove")
	assert.Contains(t, out, "Records: none")
}

func TestPlanCmd_InvalidID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "plan", "..")

	require.Error(t, err)
}
