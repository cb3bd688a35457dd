package buildvalues

// NamedValue is one name/value pair destined for an artifact document.
type NamedValue struct {
	// Name labels the value in the document. Names do not need to be unique.
	Name string

	// Value is the raw text to publish. It is never interpreted.
	Value string

	// Escaped selects entity-escaped serialization instead of the default
	// CDATA literal form.
	Escaped bool
}
