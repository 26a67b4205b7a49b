package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ObjectNamespaceSeparator demarcates the object path within a media URL.
const ObjectNamespaceSeparator = "/o/"

// bucketSeparator precedes the bucket name in Firebase Storage download URLs.
const bucketSeparator = "/b/"

// ObjectLocator addresses a binary object in the object store.
type ObjectLocator struct {
	// Bucket is the bucket named by the URL. Empty means the default bucket.
	Bucket string

	// Path is the store-relative object path, e.g. "images/b1.png".
	Path string
}

// String returns a gs:// style representation.
func (l ObjectLocator) String() string {
	if l.Bucket == "" {
		return l.Path
	}
	return "gs://" + l.Bucket + "/" + l.Path
}

// ParseMediaLocator extracts the object locator from a media URL.
//
// Download URLs carry the percent-encoded object path after "/o/":
//
//	https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/images%2Fb1.png?alt=media&token=x
//
// resolves to bucket "app.appspot.com" and path "images/b1.png". gs:// URLs
// are accepted as-is.
func ParseMediaLocator(raw string) (ObjectLocator, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ObjectLocator{}, fmt.Errorf("%w: empty reference", ErrMalformedMediaLocator)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ObjectLocator{}, fmt.Errorf("%w: %w", ErrMalformedMediaLocator, err)
	}

	if u.Scheme == "gs" {
		path := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || path == "" {
			return ObjectLocator{}, fmt.Errorf("%w: %q", ErrMalformedMediaLocator, raw)
		}
		return ObjectLocator{Bucket: u.Host, Path: path}, nil
	}

	escaped := u.EscapedPath()
	idx := strings.Index(escaped, ObjectNamespaceSeparator)
	if idx < 0 {
		return ObjectLocator{}, fmt.Errorf("%w: no %q segment in %q",
			ErrMalformedMediaLocator, ObjectNamespaceSeparator, raw)
	}

	encoded := escaped[idx+len(ObjectNamespaceSeparator):]
	if next := strings.Index(encoded, ObjectNamespaceSeparator); next >= 0 {
		encoded = encoded[:next]
	}
	path, err := url.PathUnescape(encoded)
	if err != nil {
		return ObjectLocator{}, fmt.Errorf("%w: %w", ErrMalformedMediaLocator, err)
	}
	if path == "" {
		return ObjectLocator{}, fmt.Errorf("%w: empty object path in %q", ErrMalformedMediaLocator, raw)
	}

	return ObjectLocator{Bucket: bucketFromPrefix(escaped[:idx]), Path: path}, nil
}

// bucketFromPrefix returns the segment after "/b/" in the URL path
// preceding the object separator.
func bucketFromPrefix(prefix string) string {
	i := strings.LastIndex(prefix, bucketSeparator)
	if i < 0 {
		return ""
	}
	bucket, err := url.PathUnescape(prefix[i+len(bucketSeparator):])
	if err != nil || strings.Contains(bucket, "/") {
		return ""
	}
	return bucket
}
