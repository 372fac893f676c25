//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package diag

// IsTerminal always reports false where termios is unavailable, so
// diagnostics are printed without colour.
func IsTerminal(fd uintptr) bool { return false }
