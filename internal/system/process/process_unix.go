// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

// Package process isolates the platform details of running and
// interrupting the commands a demo session launches.
package process

import (
	"golang.org/x/sys/unix"
)

//nolint:gochecknoglobals
var (
	Platform = "unix"

	id       = unix.Getpid()
	group, _ = unix.Getpgid(id)
)

// Group returns the group ID for the current process.
func Group() int {
	return group
}

// ID returns the process ID for the current process.
func ID() int {
	return id
}

// InterruptGroup sends a SIGINT to the process group of the process
// ID pid. A command launched with SysProcAttr leads its own group, so
// the signal reaches the command and anything it spawned, and nothing
// else.
func InterruptGroup(pid int) {
	_ = unix.Kill(-pid, unix.SIGINT)
}

// SysProcAttr returns the attributes needed to launch a command in its
// own process group. Isolated this way, a control-C typed at the
// terminal reaches the session, which decides what to interrupt, not
// the command and the session together.
func SysProcAttr() *unix.SysProcAttr {
	return &unix.SysProcAttr{Setpgid: true}
}
