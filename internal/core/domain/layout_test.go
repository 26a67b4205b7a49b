package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, "publicContent/b1", ContentPath("b1"))
	assert.Equal(t, "publicContent/b1/comments", CommentsPath("b1"))
	assert.Equal(t, "users/u1/content/b1", PrivateCopyPath("u1", "b1"))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "b1", LastSegment("publicContent/b1"))
	assert.Equal(t, "comments", LastSegment("publicContent/b1/comments/"))
	assert.Equal(t, "solo", LastSegment("solo"))
	assert.Equal(t, "", LastSegment(""))
}

func TestSplitDocumentPath(t *testing.T) {
	tests := []struct {
		path       string
		collection string
		id         string
		ok         bool
	}{
		{"publicContent/b1", "publicContent", "b1", true},
		{"users/u1/savedBooks/s1", "users/u1/savedBooks", "s1", true},
		{"/publicContent/b1/", "publicContent", "b1", true},
		{"publicContent", "", "", false},
		{"publicContent/b1/comments", "", "", false},
		{"publicContent//b1/x", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			collection, id, ok := SplitDocumentPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.collection, collection)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestCollectionID(t *testing.T) {
	assert.Equal(t, "savedBooks", CollectionID("users/u1/savedBooks/s1"))
	assert.Equal(t, "comments", CollectionID("publicContent/b1/comments/c1"))
	assert.Equal(t, "publicContent", CollectionID("publicContent/b1"))
	assert.Equal(t, "", CollectionID("users/u1/savedBooks"))
}

func TestValidSegment(t *testing.T) {
	assert.True(t, ValidSegment("b1"))
	assert.False(t, ValidSegment(""))
	assert.False(t, ValidSegment("a/b"))
	assert.False(t, ValidSegment(".."))
}
