// Package project holds the data model shared by discovery, deletion, and
// reporting: a discovered project, its deletion status, and status events.
package project

import "strings"

// ─── Status ──────────────────────────────────────────────────────────────────

// Status is the deletion state of a project's cache directory.
type Status int

const (
	StatusWaiting Status = iota
	StatusDeleting
	StatusFailed
	StatusDone
)

var statusNames = [...]string{"waiting", "deleting", "failed", "done"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// IsTerminal reports whether no further transitions can follow s.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransition reports whether moving from s to next goes forward.
// Waiting → Deleting → {Done | Failed}; terminal states never change.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusWaiting:
		return next == StatusDeleting
	case StatusDeleting:
		return next.IsTerminal()
	default:
		return false
	}
}

// ─── Project ─────────────────────────────────────────────────────────────────

// Project is a directory holding both the manifest file and the cache
// directory. Path is its identity.
type Project struct {
	Path   string
	Status Status
}

// New returns a waiting project rooted at path.
func New(path string) Project {
	return Project{Path: path, Status: StatusWaiting}
}

// DisplayPath returns Path without a leading "./".
func (p Project) DisplayPath() string {
	if p.Path == "." || p.Path == "" {
		return "."
	}
	return strings.TrimPrefix(p.Path, "./")
}

func (p Project) String() string {
	return p.DisplayPath()
}

// Paths returns the identities of projects in order.
func Paths(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Path)
	}
	return out
}

// ─── Events ──────────────────────────────────────────────────────────────────

// Event records one status transition of the project identified by Path.
type Event struct {
	Path   string
	Status Status
}
