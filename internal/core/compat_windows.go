//go:build windows

package core

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// windowsVersion returns the major, minor, and build numbers of the running Windows.
// Uses RtlGetNtVersionNumbers which works on all Windows versions without manifest requirements.
func windowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// RtlGetNtVersionNumbers returns build with high bits set; mask them off
	build &= 0xFFFF
	return major, minor, build
}

// Platform returns a human-readable OS description.
// Examples: "Windows 10 (Build 19045)", "Windows 11 (Build 22621)"
func Platform() string {
	major, minor, build := windowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}

// EnableVirtualTerminal turns on ANSI escape processing for the console
// attached to f. Live rendering depends on it; legacy consoles that refuse
// the mode get the plain line printer instead.
func EnableVirtualTerminal(f *os.File) bool {
	h := windows.Handle(f.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
