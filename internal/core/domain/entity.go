package domain

import (
	"fmt"
	"strings"
)

// ContentKind identifies the type of a primary entity.
type ContentKind string

// ContentKindBook is the only kind with saved and tracked references.
const ContentKindBook ContentKind = "Book"

// IsBook returns true if the kind has saved and tracked references.
func (k ContentKind) IsBook() bool {
	return k == ContentKindBook
}

// String returns the string representation.
func (k ContentKind) String() string {
	return string(k)
}

// Snapshot field names read from a deleted entity.
// The first name listed for each attribute is the one the content
// documents are written with; the second is accepted as an alias.
const (
	FieldAuthorID    = "authorId"
	FieldOwnerID     = "ownerId"
	FieldContentType = "contentType"
	FieldKind        = "kind"
	FieldImageURL    = "imageUrl"
	FieldMediaRef    = "mediaRef"
)

// DeletedEntity is the snapshot of a just-removed primary record.
// It is scoped to one cleanup invocation and never persisted.
type DeletedEntity struct {
	// ID is the final segment of the deleted document's path.
	ID string

	// OwnerID identifies the user holding a private copy. Optional.
	OwnerID string

	// Kind is the content type of the entity.
	Kind ContentKind

	// MediaRef is a fully-qualified locator of an associated binary object. Optional.
	MediaRef string
}

// EntityFromSnapshot builds a DeletedEntity from the deleted document's fields.
// Missing or non-string attributes are treated as absent.
func EntityFromSnapshot(id string, snapshot map[string]any) (*DeletedEntity, error) {
	if !ValidSegment(id) {
		return nil, fmt.Errorf("%w: entity id %q", ErrInvalidInput, id)
	}

	return &DeletedEntity{
		ID:       id,
		OwnerID:  firstString(snapshot, FieldAuthorID, FieldOwnerID),
		Kind:     ContentKind(firstString(snapshot, FieldContentType, FieldKind)),
		MediaRef: firstString(snapshot, FieldImageURL, FieldMediaRef),
	}, nil
}

// HasMedia returns true if the entity references a binary object.
func (e *DeletedEntity) HasMedia() bool {
	return e.MediaRef != ""
}

// HasOwner returns true if the entity has a known owner.
// An owner ID that cannot form a path segment is treated as unknown.
func (e *DeletedEntity) HasOwner() bool {
	return ValidSegment(e.OwnerID)
}

func firstString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
