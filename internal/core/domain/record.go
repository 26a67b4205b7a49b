package domain

// Record is a stored document read by point lookup.
type Record struct {
	// Path is the document path relative to the database root.
	Path string

	// Fields are the decoded document fields.
	Fields map[string]any
}

// ID returns the final segment of the record's path.
func (r *Record) ID() string {
	return LastSegment(r.Path)
}
