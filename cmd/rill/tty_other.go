//go:build !linux

package main

import "os"

// isTerminal falls back to the portable stat-mode check on platforms
// where the TCGETS ioctl doesn't apply.
func isTerminal(fd int) bool {
	info, err := os.NewFile(uintptr(fd), "").Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
