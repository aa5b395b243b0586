// Released under an MIT license. See LICENSE.

//go:build windows
// +build windows

package process

import (
	"os"
	"syscall"
)

//nolint:gochecknoglobals
var Platform = "windows"

// Group returns the group ID for the current process.
func Group() int {
	return 0
}

// ID returns the process ID for the current process.
func ID() int {
	return os.Getpid()
}

// InterruptGroup does nothing. There are no process groups here.
func InterruptGroup(pid int) {}

// SysProcAttr returns no special attributes.
func SysProcAttr() *syscall.SysProcAttr {
	return nil
}
