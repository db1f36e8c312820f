package storage

import "errors"

// ErrNotFound is returned when no annotation is stored under a key.
var ErrNotFound = errors.New("annotation not found")

// Key identifies a stored annotation: the tool output of a kind (e.g.
// "parse_trees") for a text version.
type Key struct {
	Version string
	Kind    string
}

// AnnotationReader defines read operations for annotation storage
type AnnotationReader interface {
	// Read returns the encoded annotation stored under key. It returns
	// ErrNotFound if there is none.
	Read(key Key) ([]byte, error)
}

// AnnotationWriter defines write operations for annotation storage
type AnnotationWriter interface {
	// Write stores data under key, replacing any previous value.
	Write(key Key, data []byte) error

	// Delete removes the annotation under key. Deleting a missing key is
	// not an error.
	Delete(key Key) error
}

// AnnotationStore persists expensive tool outputs across runs.
type AnnotationStore interface {
	AnnotationReader
	AnnotationWriter
}
