// Released under an MIT license. See LICENSE.

// Package scribe synthesizes a new demo script from a running session.
//
// The scribe writes each command as it is dispatched, so the output is
// complete even if the session ends badly. Pauses are not reproduced
// and header comments are invisible ones, which makes the synthesized
// script replayable unattended: playing it produces the same command
// sequence that produced it.
package scribe

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ErrExists means the output file is already there. The scribe never
// clobbers; a demo that overwrites last week's demo is a bad surprise.
var ErrExists = errors.New("file already exists")

// T (scribe) writes the commands of a session to a new script file.
// An inactive scribe accepts and discards writes, so callers do not
// need to care whether synthesis was requested.
type T struct {
	file *os.File
	path string
}

type scribe = T

// New creates a new, inactive scribe.
func New() *T {
	return &scribe{}
}

// End closes the script the scribe s is writing. The scribe can be
// started again afterward.
func (s *scribe) End() error {
	if !s.IsActive() {
		return nil
	}

	defer func() {
		s.file = nil
		s.path = ""
	}()

	return s.file.Close()
}

// IsActive returns true if the scribe s has an open script.
func (s *scribe) IsActive() bool {
	return s.file != nil
}

// Start begins a new script at path, refusing to overwrite an
// existing file. The header records the session id and the scripts
// the session was playing.
func (s *scribe) Start(path, id string, sources []string) error {
	if s.IsActive() {
		return fmt.Errorf("already writing %s", s.path)
	}

	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s: %w", path, ErrExists)
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	s.file = f
	s.path = path

	header := "#!/usr/bin/env demo\n" +
		"## demo session " + id + " " + time.Now().Format(time.RFC3339) + "\n" +
		"## source: " + strings.Join(sources, " ") + "\n"

	if _, err := s.file.WriteString(header); err != nil {
		return err
	}

	return nil
}

// Write appends one command line to the script the scribe s is
// writing, if any.
func (s *scribe) Write(text string) error {
	if !s.IsActive() || text == "" {
		return nil
	}

	_, err := s.file.WriteString(text + "\n")

	return err
}
