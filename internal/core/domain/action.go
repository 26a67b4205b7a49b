package domain

// ActionType tags the variant of a CleanupAction.
type ActionType string

// Cleanup action variants.
const (
	// ActionRemoveObject deletes the entity's binary object.
	ActionRemoveObject ActionType = "remove-object"

	// ActionPurgeSubcollection deletes every document in a collection
	// scoped under the entity.
	ActionPurgeSubcollection ActionType = "purge-subcollection"

	// ActionPurgeReferences deletes every document, in any collection with
	// the given name, whose foreign key field equals a value.
	ActionPurgeReferences ActionType = "purge-references"

	// ActionRemoveDocument deletes one document at a known path.
	ActionRemoveDocument ActionType = "remove-document"
)

// RefReason records why a dependent record is removed.
type RefReason string

// Dependent record reasons.
const (
	ReasonComment          RefReason = "comment"
	ReasonSavedReference   RefReason = "saved-reference"
	ReasonTrackedReference RefReason = "tracked-reference"
	ReasonPrivateCopy      RefReason = "private-copy"
)

// CleanupAction is one planned cleanup step. Only the fields of its Type
// are set; the planner decides what to remove, the executor how.
type CleanupAction struct {
	// Type selects the variant.
	Type ActionType

	// Reason applies to record actions.
	Reason RefReason

	// MediaRef is the raw locator of ActionRemoveObject.
	MediaRef string

	// Object is the parsed locator of ActionRemoveObject.
	// Zero when LocatorErr is set.
	Object ObjectLocator

	// LocatorErr records why MediaRef could not be parsed.
	LocatorErr error

	// CollectionPath is the collection ActionPurgeSubcollection empties.
	CollectionPath string

	// CollectionID, Field and Value define the collection-group equality
	// query of ActionPurgeReferences.
	CollectionID string
	Field        string
	Value        string

	// Path is the document ActionRemoveDocument deletes.
	Path string
}

// NewRemoveObjectAction plans removal of the object a media reference names.
// A malformed reference still produces an action so the failure is reported.
func NewRemoveObjectAction(mediaRef string) CleanupAction {
	loc, err := ParseMediaLocator(mediaRef)
	return CleanupAction{
		Type:       ActionRemoveObject,
		MediaRef:   mediaRef,
		Object:     loc,
		LocatorErr: err,
	}
}

// NewPurgeSubcollectionAction plans removal of every document in a collection.
func NewPurgeSubcollectionAction(collectionPath string, reason RefReason) CleanupAction {
	return CleanupAction{
		Type:           ActionPurgeSubcollection,
		Reason:         reason,
		CollectionPath: collectionPath,
	}
}

// NewPurgeReferencesAction plans a collection-group purge keyed by field == value.
func NewPurgeReferencesAction(collectionID, field, value string, reason RefReason) CleanupAction {
	return CleanupAction{
		Type:         ActionPurgeReferences,
		Reason:       reason,
		CollectionID: collectionID,
		Field:        field,
		Value:        value,
	}
}

// NewRemoveDocumentAction plans removal of a single document.
func NewRemoveDocumentAction(path string, reason RefReason) CleanupAction {
	return CleanupAction{
		Type:   ActionRemoveDocument,
		Reason: reason,
		Path:   path,
	}
}

// Name returns a short label used in logs and outcomes.
func (a CleanupAction) Name() string {
	switch a.Type {
	case ActionPurgeSubcollection:
		return string(a.Type) + ":" + LastSegment(a.CollectionPath)
	case ActionPurgeReferences:
		return string(a.Type) + ":" + a.CollectionID
	case ActionRemoveDocument:
		return string(a.Type) + ":" + string(a.Reason)
	default:
		return string(a.Type)
	}
}

// IsRecordAction returns true for actions that feed the record-removal lane.
func (a CleanupAction) IsRecordAction() bool {
	return a.Type != ActionRemoveObject
}

// NeedsDiscovery returns true if the action's records must be found by query.
func (a CleanupAction) NeedsDiscovery() bool {
	return a.Type == ActionPurgeSubcollection || a.Type == ActionPurgeReferences
}
