package domain

import "strings"

// Collection and field names of the content store layout.
const (
	// PublicContentCollection holds the primary entities.
	PublicContentCollection = "publicContent"

	// CommentsCollection is the per-entity comments subcollection.
	CommentsCollection = "comments"

	// SavedBooksCollection is a per-user collection of saved book references.
	SavedBooksCollection = "savedBooks"

	// TrackedBooksCollection is a per-user collection of tracked book references.
	TrackedBooksCollection = "trackedBooks"

	// UsersCollection holds per-user namespaces.
	UsersCollection = "users"

	// PrivateContentCollection is the owner's private denormalised copy collection.
	PrivateContentCollection = "content"

	// BookIDField is the foreign key saved and tracked references use.
	BookIDField = "bookId"
)

const pathSeparator = "/"

// JoinPath joins path segments with the store separator.
func JoinPath(segments ...string) string {
	return strings.Join(segments, pathSeparator)
}

// ContentPath returns the document path of a primary entity.
func ContentPath(id string) string {
	return JoinPath(PublicContentCollection, id)
}

// CommentsPath returns the collection path of an entity's comments.
func CommentsPath(id string) string {
	return JoinPath(PublicContentCollection, id, CommentsCollection)
}

// PrivateCopyPath returns the path of the owner's private copy of an entity.
func PrivateCopyPath(ownerID, id string) string {
	return JoinPath(UsersCollection, ownerID, PrivateContentCollection, id)
}

// LastSegment returns the final segment of a path.
func LastSegment(path string) string {
	path = strings.TrimSuffix(path, pathSeparator)
	if i := strings.LastIndex(path, pathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SplitDocumentPath splits a document path into its parent collection path
// and document ID. Returns false if the path does not name a document
// (document paths have an even number of segments).
func SplitDocumentPath(path string) (collectionPath, id string, ok bool) {
	segments := strings.Split(strings.Trim(path, pathSeparator), pathSeparator)
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", false
	}
	for _, s := range segments {
		if s == "" {
			return "", "", false
		}
	}
	last := len(segments) - 1
	return JoinPath(segments[:last]...), segments[last], true
}

// CollectionID returns the name of the collection a document lives in,
// e.g. "savedBooks" for "users/u1/savedBooks/s1".
func CollectionID(documentPath string) string {
	collectionPath, _, ok := SplitDocumentPath(documentPath)
	if !ok {
		return ""
	}
	return LastSegment(collectionPath)
}

// ValidSegment reports whether s can be used as a single path segment.
func ValidSegment(s string) bool {
	return s != "" && !strings.Contains(s, pathSeparator) && s != "." && s != ".."
}
