package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotDirectory is returned when a removal target exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrUnsafePath is returned for targets that must never be removed
	// (empty paths and filesystem roots).
	ErrUnsafePath = errors.New("refusing to remove unsafe path")
)

// CanonicalPath resolves path to an absolute path with symlinks evaluated.
// It fails if path no longer exists.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

// RemoveDir recursively deletes the directory at path.
// Unlike os.RemoveAll, a missing target is an error: something else removed
// it first, so nothing was freed by us.
func RemoveDir(path string) error {
	if path == "" {
		return ErrUnsafePath
	}
	clean := filepath.Clean(path)
	if clean == filepath.Dir(clean) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, clean)
	}

	info, err := os.Lstat(clean)
	if err != nil {
		return err
	}
	// A symlinked cache directory is removed as a link, never followed.
	if !info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s: %w", clean, ErrNotDirectory)
	}

	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("remove %s: %w", clean, err)
	}
	return nil
}
