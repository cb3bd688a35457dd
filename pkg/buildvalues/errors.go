package buildvalues

import "errors"

var (
	// ErrIO indicates an artifact could not be persisted to its destination.
	ErrIO = errors.New("io failure")

	// ErrEncoding indicates a document could not be represented in the
	// artifact encoding.
	ErrEncoding = errors.New("encoding failure")
)
