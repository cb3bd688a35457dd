package projectcfg

import "errors"

var (
	// ErrMissingAttribute indicates an element lacks a required attribute.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrInvalidAttribute indicates an attribute value could not be parsed.
	ErrInvalidAttribute = errors.New("invalid attribute value")

	// ErrInvalidDocument indicates the config root is not a project element.
	ErrInvalidDocument = errors.New("invalid project document")

	// ErrDuplicateTask indicates two export tasks share a name.
	ErrDuplicateTask = errors.New("duplicate export task")
)
