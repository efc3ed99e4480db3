//go:build !windows

package core

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// Platform returns a human-readable OS description, e.g. "linux 6.8.0 (amd64)".
func Platform() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS + " (" + runtime.GOARCH + ")"
	}
	return runtime.GOOS + " " + unix.ByteSliceToString(uts.Release[:]) + " (" + runtime.GOARCH + ")"
}

// EnableVirtualTerminal is a no-op outside Windows; terminals there already
// interpret ANSI sequences.
func EnableVirtualTerminal(_ *os.File) bool {
	return true
}
