package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

func TestDeleteCmd_RemovesDocumentAndDependents(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	out, err := executeCommand(t, "", "delete", "b1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted publicContent/b1")
	assert.Contains(t, out, "Records deleted: 6 in 1 batch(es)")
	assert.Equal(t, 1, env.docs.Len())
	assert.True(t, env.docs.Exists("users/u3/savedBooks/s2"))
	assert.False(t, env.objects.Exists(domain.ObjectLocator{Path: "images/b1.png"}))
}

func TestDeleteCmd_RunTwice(t *testing.T) {
	env := setupTestServices(t)
	env.seedBook(t)

	_, err := executeCommand(t, "", "delete", "b1")
	require.NoError(t, err)

	out, err := executeCommand(t, "", "delete", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "No data for b1")
	assert.Equal(t, 1, env.docs.Len())
}

func TestDeleteCmd_InvalidID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "delete", "a/b")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteCmd_NoDocumentStore(t *testing.T) {
	setupTestServices(t)
	documentStore = nil

	_, err := executeCommand(t, "", "delete", "b1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document store not configured")
}
