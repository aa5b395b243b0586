// Released under an MIT license. See LICENSE.

package session

import (
	"errors"
	"os"

	"github.com/klmitch/demo/internal/registry"
)

// builtins registers the commands every session starts with.
func (s *session) builtins() {
	for name, h := range map[string]registry.Func{
		"cd":    s.cd,
		"exit":  s.exit,
		"unset": s.unset,
	} {
		if err := s.names.Register(name, h); err != nil {
			// Nothing can claim a name before this runs.
			panic(err.Error())
		}
	}
}

// cd changes the working directory, defaulting to HOME.
func (s *session) cd(args []string, _ map[string]string) (string, int, error) {
	var dir string

	switch {
	case len(args) > 1:
		dir = s.environ.Expand(args[1])
	default:
		if v, found := s.environ.Resolve("HOME"); found {
			dir = v
		} else if home, err := os.UserHomeDir(); err == nil {
			dir = home
		}
	}

	if dir == "" {
		return "", 1, errors.New("cd: no home directory")
	}

	if err := os.Chdir(dir); err != nil {
		return "", 1, err
	}

	if wd, err := os.Getwd(); err == nil {
		s.environ.SetPersistent("PWD", wd)
	}

	return "", 0, nil
}

// exit ends the session once the current line finishes.
func (s *session) exit(_ []string, _ map[string]string) (string, int, error) {
	s.transition(Done)

	return "", 0, nil
}

// unset removes variables from the session environment.
func (s *session) unset(args []string, _ map[string]string) (string, int, error) {
	for _, name := range args[1:] {
		s.environ.Unset(name)
	}

	return "", 0, nil
}
