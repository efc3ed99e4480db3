package core

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to an interactive terminal,
// including Cygwin/MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
