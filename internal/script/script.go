// Released under an MIT license. See LICENSE.

// Package script loads demo scripts.
//
// A loaded script is a flat sequence of classified lines. Source
// directives are spliced in place at load time, so by the time a
// script plays, the tree of sourced files is already one ordered
// list. Cycles are caught here, before anything executes.
package script

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/klmitch/demo/internal/script/line"
)

// CycleError describes a script that sources itself, directly or not.
type CycleError struct {
	Path string
}

func (e *CycleError) Error() string {
	return "cyclic source: " + e.Path
}

// T (script) is a flattened, ordered sequence of lines.
type T struct {
	Lines []*line.T
}

type script = T

// Load reads and flattens the named demo scripts, in order.
func Load(paths ...string) (*T, error) {
	s := &script{}

	active := map[string]bool{}

	for _, path := range paths {
		if err := s.load(path, active); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// load reads one file, splicing in any files it sources. The active
// set holds the files between here and the root of the source tree.
func (s *script) load(path string, active map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if active[abs] {
		return &CycleError{Path: path}
	}

	active[abs] = true
	defer delete(active, abs)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(path)

	scanner := bufio.NewScanner(f)

	lno := 0
	for scanner.Scan() {
		lno++

		l := line.New(path, lno, scanner.Text())

		switch {
		case l.Kind == line.Shebang:
			// The shebang is for the kernel, not the audience.

		case l.Kind == line.Source && l.Err == nil:
			// A relative target is relative to the sourcing
			// script, not to wherever demo was started.
			target := l.Path
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}

			if err := s.load(target, active); err != nil {
				return err
			}

		default:
			s.Lines = append(s.Lines, l)
		}
	}

	return scanner.Err()
}
