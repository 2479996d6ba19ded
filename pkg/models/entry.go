package models

import (
	"time"
)

// FileEntry represents a regular file discovered during traversal.
// Entries are created by the traverser, hashed exactly once by a
// worker, and then discarded.
type FileEntry struct {
	// Path is the full path on the filesystem
	Path string

	// RelativePath is the path relative to the traversal root
	RelativePath string

	// Size in bytes at discovery time
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// DisplayPath returns the path to present to the user, relative to the
// root when relative rendering is requested.
func (e FileEntry) DisplayPath(relative bool) string {
	if relative {
		return e.RelativePath
	}
	return e.Path
}
