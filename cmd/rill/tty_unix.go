//go:build linux

package main

import "golang.org/x/sys/unix"

// isTerminal reports whether fd refers to a terminal device via the
// TCGETS ioctl, rather than inferring it from os.FileInfo.Mode as
// cli/colors.go does — the same raw syscall tty detection leans on
// everywhere it isn't handed a pre-built os.File.
func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}
