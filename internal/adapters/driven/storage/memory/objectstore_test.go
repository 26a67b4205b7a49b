package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

func TestObjectStore_DeleteObject(t *testing.T) {
	store := NewObjectStore()
	loc := domain.ObjectLocator{Path: "images/b1.png"}
	store.Put(loc, []byte("png"))
	require.True(t, store.Exists(loc))

	require.NoError(t, store.DeleteObject(context.Background(), loc))
	assert.False(t, store.Exists(loc))

	err := store.DeleteObject(context.Background(), loc)
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	assert.Equal(t, 2, store.Deletes())
}

func TestObjectStore_BucketScoped(t *testing.T) {
	store := NewObjectStore()
	store.Put(domain.ObjectLocator{Bucket: "a", Path: "x.png"}, nil)

	err := store.DeleteObject(context.Background(), domain.ObjectLocator{Bucket: "b", Path: "x.png"})
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	assert.True(t, store.Exists(domain.ObjectLocator{Bucket: "a", Path: "x.png"}))
}
