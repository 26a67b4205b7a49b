package webhook

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

const deletionEvent = `{
  "oldValue": {
    "name": "projects/p/databases/(default)/documents/publicContent/b1",
    "fields": {
      "authorId": {"stringValue": "u1"},
      "contentType": {"stringValue": "Book"},
      "imageUrl": {"stringValue": "https://store/o/images%2Fb1.png?token=x"},
      "pages": {"integerValue": "120"}
    }
  },
  "params": {"contentId": "b1"}
}`

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent(strings.NewReader(deletionEvent))
	require.NoError(t, err)

	id, err := event.EntityID()
	require.NoError(t, err)
	assert.Equal(t, "b1", id)

	snapshot := event.Snapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, "u1", snapshot["authorId"])
	assert.Equal(t, "Book", snapshot["contentType"])
	assert.Equal(t, "https://store/o/images%2Fb1.png?token=x", snapshot["imageUrl"])
	assert.Equal(t, int64(120), snapshot["pages"])
}

func TestDecodeEvent_InvalidJSON(t *testing.T) {
	_, err := DecodeEvent(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "from document name",
			body: `{"oldValue": {"name": "projects/p/databases/d/documents/publicContent/b2"}}`,
			want: "b2",
		},
		{
			name: "from params only",
			body: `{"params": {"contentId": "b3"}}`,
			want: "b3",
		},
		{
			name: "relative name",
			body: `{"oldValue": {"name": "publicContent/b4"}}`,
			want: "b4",
		},
		{
			name:    "param mismatch",
			body:    `{"oldValue": {"name": "projects/p/databases/d/documents/publicContent/b1"}, "params": {"contentId": "b9"}}`,
			wantErr: true,
		},
		{
			name:    "wrong collection",
			body:    `{"oldValue": {"name": "projects/p/databases/d/documents/users/u1"}}`,
			wantErr: true,
		},
		{
			name:    "nested document",
			body:    `{"oldValue": {"name": "projects/p/databases/d/documents/publicContent/b1/comments/c1"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeEvent(strings.NewReader(tt.body))
			require.NoError(t, err)

			id, err := event.EntityID()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestSnapshot_NoOldValue(t *testing.T) {
	event, err := DecodeEvent(strings.NewReader(`{"params": {"contentId": "b1"}}`))
	require.NoError(t, err)
	assert.Nil(t, event.Snapshot())
}

func TestSnapshot_EmptyFields(t *testing.T) {
	event, err := DecodeEvent(strings.NewReader(`{"oldValue": {"name": "publicContent/b1"}}`))
	require.NoError(t, err)

	snapshot := event.Snapshot()
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
}
