// Copyright 2017-2018 The Argo Authors
// Licensed under the Apache License, Version 2.0

package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxSymlinkDepth = 10

var (
	ErrMaxNestingLevelReached   = errors.New("maximum nesting level reached")
	ErrResolvePath              = errors.New("failed to resolve path")
	ErrSchemeNotAllowed         = errors.New("destination must be a local path")
	ErrResolvedOutsideWorkspace = errors.New("path resolved to outside the workspace root")
	ErrResolvedToWorkspaceRoot  = errors.New("path resolved to the workspace root itself")
)

// ResolvedPath is an absolute destination path that has been verified to stay
// inside the workspace root. It is intended to prevent unintentional use of
// an unverified path.
type ResolvedPath string

// String returns the resolved absolute path as a string.
func (p ResolvedPath) String() string {
	return string(p)
}

// ResolveSymbolicLinkRecursive resolves the symlink path recursively to its
// canonical path on the file system, with a maximum nesting level of maxDepth.
// If path is not a symlink, returns the verbatim copy of path and err of nil.
func ResolveSymbolicLinkRecursive(path string, maxDepth int) (string, error) {
	resolved, err := os.Readlink(path)
	if err != nil {
		// path is not a symbolic link
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return path, nil
		}
		// Other error has occurred
		return "", fmt.Errorf("failed to read link for path %q: %w", path, err)
	}

	if maxDepth == 0 {
		return "", fmt.Errorf("%w: %s", ErrMaxNestingLevelReached, path)
	}

	// If we resolved to a relative symlink, make sure we use the absolute
	// path for further resolving.
	if !strings.HasPrefix(resolved, string(os.PathSeparator)) {
		basePath := filepath.Dir(path)
		resolved = filepath.Join(basePath, resolved)
	}

	return ResolveSymbolicLinkRecursive(resolved, maxDepth-1)
}

// ResolveArtifactPath resolves dest against baseDir and makes sure the final
// path is within the boundaries of workspaceRoot, following symlinks on the
// destination itself. dest may be relative or absolute. URL destinations are
// rejected.
func ResolveArtifactPath(baseDir, workspaceRoot, dest string) (ResolvedPath, error) {
	if strings.Contains(dest, "://") {
		return "", fmt.Errorf("%w: %q", ErrSchemeNotAllowed, dest)
	}

	path := dest
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	resolved, err := ResolveSymbolicLinkRecursive(path, maxSymlinkDepth)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolvePath, err)
	}

	resolved = filepath.Clean(resolved)

	root := filepath.Clean(workspaceRoot)
	if resolved == root {
		return "", ErrResolvedToWorkspaceRoot
	}

	if !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrResolvedOutsideWorkspace, dest)
	}

	return ResolvedPath(resolved), nil
}
