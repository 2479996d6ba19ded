package traverse

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/filematch/filematch/pkg/models"
)

// Error represents a recovered traversal error: the affected subtree is
// skipped and traversal continues with its siblings.
type Error struct {
	Path string
	Err  error
}

// Traverser enumerates the regular files reachable under one root.
// Symbolic links are not followed; a symlink to a directory is treated
// as a leaf and never descended into, so link cycles cannot occur.
type Traverser struct {
	root       string
	skipHidden bool
	exclude    []string
}

// New creates a traverser for the given root. It fails if the root
// does not exist, is not a directory, or cannot be resolved.
func New(root string, skipHidden bool, exclude []string) (*Traverser, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Traverser{
		root:       absPath,
		skipHidden: skipHidden,
		exclude:    exclude,
	}, nil
}

// Root returns the resolved absolute root path.
func (t *Traverser) Root() string {
	return t.root
}

// Walk calls emit for every regular file under the root, lazily, in
// directory order. Hidden entries (and their whole subtrees) are
// skipped when skipHidden is set, as are entries matching the exclude
// patterns. Errors entering a subtree are reported through onError and
// do not abort the walk; only context cancellation or an emit error
// stops it.
func (t *Traverser) Walk(ctx context.Context, emit func(models.FileEntry) error, onError func(Error)) error {
	return filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: record and continue with siblings.
			if onError != nil {
				onError(Error{Path: path, Err: err})
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == t.root {
			return nil
		}

		if t.skipHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(t.root, path)
		if err != nil {
			if onError != nil {
				onError(Error{Path: path, Err: err})
			}
			return nil
		}

		if shouldExclude(relPath, t.exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files are emitted; directories, symlinks and
		// other special entries are not.
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if onError != nil {
				onError(Error{Path: path, Err: err})
			}
			return nil
		}

		return emit(models.FileEntry{
			Path:         path,
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})
	})
}

// isHidden reports whether a base name uses the dotfile convention.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
