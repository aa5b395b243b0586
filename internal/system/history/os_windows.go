// Released under an MIT license. See LICENSE.

//go:build windows
// +build windows

package history

import (
	"os"
	"path/filepath"
)

// Default returns the default history file location.
func Default() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".demo_history"
	}

	return filepath.Join(home, ".demo_history")
}
