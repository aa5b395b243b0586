// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package history

import (
	"os"
	"path"
)

// Default returns the default history file location.
func Default() string {
	return path.Join(os.Getenv("HOME"), ".demo_history")
}
