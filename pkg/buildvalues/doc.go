// Package buildvalues renders ordered name/value collections into standalone
// XML artifact documents and persists them atomically.
//
// A document wraps each pair in an Item element under a fixed BuildValues
// root. Values are emitted as CDATA sections by default, or entity-escaped
// when a pair opts out of literal encoding. Serialization is deterministic,
// so rewriting unchanged values produces byte-identical artifacts.
package buildvalues
