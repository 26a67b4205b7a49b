package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSnapshotMissing indicates a deletion event carried no prior document
	// state. It is informational: the invocation is skipped, not failed.
	ErrSnapshotMissing = errors.New("deletion event has no snapshot")

	// ErrBatchTooLarge indicates a batch exceeded the store's operation ceiling.
	ErrBatchTooLarge = errors.New("batch exceeds operation limit")

	// Object Lane Errors. These never escalate past the object lane.

	// ErrMalformedMediaLocator indicates the media reference cannot be parsed
	// into a store-relative object path.
	ErrMalformedMediaLocator = errors.New("malformed media locator")

	// ErrObjectNotFound indicates the object is already absent from the object store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectDeleteFailed indicates the object store rejected the delete.
	ErrObjectDeleteFailed = errors.New("object delete failed")

	// Record Lane Errors. These are surfaced to the invocation layer so that
	// delivery retry can converge.

	// ErrQueryFailed indicates dependent-record discovery failed.
	ErrQueryFailed = errors.New("dependent record query failed")

	// ErrBatchCommitFailed indicates an atomic multi-delete was rejected.
	ErrBatchCommitFailed = errors.New("batch commit failed")
)
