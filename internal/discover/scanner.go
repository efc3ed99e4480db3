// Package discover walks a directory tree looking for projects: directories
// that hold a manifest file and a dependency cache directory side by side.
package discover

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lakshaymaurya-felt/nmsweep/internal/logging"
	"github.com/lakshaymaurya-felt/nmsweep/internal/project"
)

// maxWarnings caps how many traversal warnings are kept in memory.
const maxWarnings = 500

// Options configures a Scanner.
type Options struct {
	// Manifest is the file name that marks a project, e.g. "package.json".
	Manifest string

	// CacheDir is the directory that must sit next to the manifest, e.g. "node_modules".
	CacheDir string

	// MaxDepth bounds the walk. The root is depth 0 and a manifest is only
	// considered when its own depth is <= MaxDepth.
	MaxDepth int

	// Exclude lists directory names (case-insensitive) never descended into.
	Exclude []string
}

// Scanner finds projects under a root directory.
type Scanner struct {
	opts         Options
	exclude      map[string]bool
	mu           sync.Mutex
	warnings     []string
	visitedCount atomic.Int64
}

// New creates a scanner. A matched project is never descended into, so its
// own cache directory is never walked; other directories with the cache name
// are walked like any other unless excluded.
func New(opts Options) *Scanner {
	excMap := make(map[string]bool, len(opts.Exclude))
	for _, e := range opts.Exclude {
		excMap[strings.ToLower(e)] = true
	}

	return &Scanner{
		opts:    opts,
		exclude: excMap,
	}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// VisitedCount returns the number of directories inspected so far.
func (s *Scanner) VisitedCount() int64 {
	return s.visitedCount.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < maxWarnings {
		s.warnings = append(s.warnings, msg)
	}
}

// Scan walks root and returns every project found, each in the waiting state.
// Unreadable directories are skipped with a warning. An empty result is valid.
func (s *Scanner) Scan(ctx context.Context, root string) []project.Project {
	log := logging.FromContext(ctx)
	root = filepath.Clean(root)

	var projects []project.Project

	// WalkDir never follows symlinks, so link cycles cannot trap the walk.
	// A symlinked root is the exception: the trailing separator makes the
	// walk start from the link target while paths stay under the link.
	walkRoot := root
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if path == walkRoot {
			path = root
		}
		if err != nil {
			// The root itself failing to stat ends the walk; anything deeper
			// is skipped and the walk continues.
			s.addWarning("cannot read " + path + ": " + err.Error())
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable directory")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		depth := depthOf(root, path)
		if depth >= s.opts.MaxDepth {
			// The manifest would sit deeper than MaxDepth.
			return fs.SkipDir
		}
		if path != root && s.exclude[strings.ToLower(d.Name())] {
			return fs.SkipDir
		}

		s.visitedCount.Add(1)

		found, err := s.hasManifest(path)
		if err != nil {
			s.addWarning("cannot stat manifest in " + path + ": " + err.Error())
			log.Warn().Err(err).Str("path", path).Msg("skipping directory")
			return fs.SkipDir
		}
		if !found {
			return nil
		}

		if s.hasCacheDir(path) {
			projects = append(projects, project.New(path))
			log.Debug().Str("path", path).Msg("found project")
		}

		// A project's own tree never contains further candidates.
		return fs.SkipDir
	})

	return projects
}

// hasManifest reports whether dir directly holds a regular manifest file.
func (s *Scanner) hasManifest(dir string) (bool, error) {
	info, err := os.Lstat(filepath.Join(dir, s.opts.Manifest))
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// hasCacheDir reports whether dir directly holds the cache directory.
// A symlink to a directory counts.
func (s *Scanner) hasCacheDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, s.opts.CacheDir))
	return err == nil && info.IsDir()
}

// depthOf returns how many path segments separate path from root.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
