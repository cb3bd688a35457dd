// Package paths provides utilities for resolving and validating file paths.
//
// This package implements destination resolution for artifact writes,
// including symlink handling and workspace containment checks, plus
// discovery of workspace roots and project files.
package paths
