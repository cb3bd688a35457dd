// Package syncs provides synchronization primitives and utilities.
//
// This package implements concurrency control mechanisms used to coordinate
// concurrent export work, such as serializing writes that share an artifact
// destination.
package syncs
