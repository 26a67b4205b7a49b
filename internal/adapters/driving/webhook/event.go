package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	firestoreapi "google.golang.org/api/firestore/v1"

	"github.com/custodia-labs/cascade/internal/connectors/google/firestore"
	"github.com/custodia-labs/cascade/internal/core/domain"
)

// ContentIDParam is the trigger path parameter holding the entity ID.
const ContentIDParam = "contentId"

// DocumentEvent is a Firestore document change event. For a deletion,
// OldValue holds the document as it was and Value is empty.
type DocumentEvent struct {
	OldValue *firestoreapi.Document `json:"oldValue,omitempty"`
	Value    *firestoreapi.Document `json:"value,omitempty"`
	Params   map[string]string      `json:"params,omitempty"`
}

// DecodeEvent reads a DocumentEvent from r.
func DecodeEvent(r io.Reader) (*DocumentEvent, error) {
	var event DocumentEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return nil, fmt.Errorf("%w: decoding event: %w", domain.ErrInvalidInput, err)
	}
	return &event, nil
}

// EntityID returns the ID of the deleted entity, preferring the trigger
// parameter over the document name. The document, when present, must be a
// direct child of the primary collection.
func (e *DocumentEvent) EntityID() (string, error) {
	var fromName string
	if e.OldValue != nil && e.OldValue.Name != "" {
		path := documentPath(e.OldValue.Name)
		collection, id, ok := domain.SplitDocumentPath(path)
		if !ok || collection != domain.PublicContentCollection {
			return "", fmt.Errorf("%w: %q is not a %s document",
				domain.ErrInvalidInput, e.OldValue.Name, domain.PublicContentCollection)
		}
		fromName = id
	}

	id := e.Params[ContentIDParam]
	switch {
	case id == "":
		id = fromName
	case fromName != "" && id != fromName:
		return "", fmt.Errorf("%w: %s %q does not match document %q",
			domain.ErrInvalidInput, ContentIDParam, id, fromName)
	}
	return id, nil
}

// Snapshot returns the deleted document's fields, or nil when the event
// carried no prior state.
func (e *DocumentEvent) Snapshot() map[string]any {
	if e.OldValue == nil {
		return nil
	}
	return firestore.DecodeFields(e.OldValue.Fields)
}

// documentPath strips the "projects/{p}/databases/{d}/documents/" prefix.
func documentPath(name string) string {
	if _, rest, ok := strings.Cut(name, "/documents/"); ok {
		return rest
	}
	return strings.Trim(name, "/")
}
