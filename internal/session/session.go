// Released under an MIT license. See LICENSE.

// Package session drives a demo: it plays scripted lines in order,
// pauses on blank lines, and hands control to the operator until they
// resume.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klmitch/demo/internal/env"
	"github.com/klmitch/demo/internal/extension"
	"github.com/klmitch/demo/internal/history"
	"github.com/klmitch/demo/internal/prompt"
	"github.com/klmitch/demo/internal/registry"
	"github.com/klmitch/demo/internal/report"
	"github.com/klmitch/demo/internal/scribe"
	"github.com/klmitch/demo/internal/script"
	"github.com/klmitch/demo/internal/script/line"
	"github.com/klmitch/demo/internal/shell"
	"github.com/klmitch/demo/internal/system/process"
	"github.com/klmitch/demo/internal/ui"
)

// State is the run state of a session.
type State int

// Session states. A session starts Running and ends Done.
const (
	Running State = iota
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	}

	return "unknown"
}

// Reader supplies lines while the session is paused.
type Reader interface {
	Read(prompt string) (string, error)
	Append(line string)
}

// Config assembles a session.
type Config struct {
	Files            []string // Scripts to play, in order.
	Output           string   // Synthesize a script here; empty for none.
	Prompt           string   // Prompt template.
	RecordDirectives bool     // Record import directives in the output.
	Extensions       []string // Extension module search directories.

	Reader Reader    // Line source while paused.
	Stdout io.Writer // Defaults to os.Stdout.
	Stderr io.Writer // Defaults to os.Stderr.

	Debug bool
	Log   *zap.Logger
}

// T (session) owns everything one run of a demo needs.
type T struct {
	id    string
	state State

	lines []*line.T
	pos   int
	typed int

	environ  *env.T
	executed *history.T
	loader   *extension.T
	names    *registry.T
	output   *scribe.T
	reporter *report.T

	reader Reader
	stdout io.Writer
	stderr io.Writer

	template string
	record   bool

	log *zap.Logger
}

type session = T

// New creates a session ready to run. Anything that would doom the
// demo partway through, a broken prompt template, a cyclic source, an
// output file that already exists, fails here instead.
func New(cfg Config) (*T, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	template := cfg.Prompt
	if template == "" {
		template = prompt.Default
	}

	if err := prompt.Check(template); err != nil {
		return nil, err
	}

	loaded, err := script.Load(cfg.Files...)
	if err != nil {
		return nil, err
	}

	s := &session{
		id:       uuid.NewString(),
		state:    Running,
		lines:    loaded.Lines,
		environ:  env.New(os.Environ()),
		executed: history.New(),
		names:    registry.New(),
		output:   scribe.New(),
		reporter: report.New(stderr, cfg.Debug, log),
		reader:   cfg.Reader,
		stdout:   stdout,
		stderr:   stderr,
		template: template,
		record:   cfg.RecordDirectives,
		log:      log,
	}

	s.loader = extension.New(s.names, cfg.Extensions, log)

	s.builtins()

	if cfg.Output != "" {
		if err := s.output.Start(cfg.Output, s.id, cfg.Files); err != nil {
			return nil, err
		}
	}

	log.Debug("session created",
		zap.String("id", s.id),
		zap.String("platform", process.Platform),
		zap.Int("pid", process.ID()),
		zap.Int("pgrp", process.Group()),
		zap.Strings("commands", s.names.Names()),
		zap.Strings("files", cfg.Files),
		zap.Int("lines", len(s.lines)))

	return s, nil
}

// Run plays the session to completion.
func (s *session) Run() error {
	for s.state != Done {
		switch s.state {
		case Running:
			if s.pos == len(s.lines) {
				s.transition(Done)

				break
			}

			l := s.lines[s.pos]
			s.pos++

			s.play(l)

		case Paused:
			s.interact()
		}
	}

	s.log.Debug("session done",
		zap.String("id", s.id),
		zap.Int("executed", s.executed.Len()))

	return s.output.End()
}

// State returns the session's run state.
func (s *session) State() State {
	return s.state
}

// History returns the commands the session has executed so far.
func (s *session) History() []string {
	return s.executed.Lines()
}

// play dispatches one classified line, scripted or typed.
func (s *session) play(l *line.T) {
	s.log.Debug("line",
		zap.String("loc", l.Loc()),
		zap.Stringer("kind", l.Kind),
		zap.Bool("echo", l.Echo))

	if l.Echo {
		fmt.Fprintln(s.stdout, l.Raw)
	}

	if l.Err != nil {
		s.reporter.Report(l.Err)

		return
	}

	switch l.Kind {
	case line.Comment, line.Shebang:
		// Nothing left to do.

	case line.Pause:
		if s.state == Running {
			s.transition(Paused)
		}

	case line.Command:
		s.append(l)
		s.command(l)

	case line.Export:
		s.append(l)
		s.export(l)

	case line.Import:
		s.directive(l)

	case line.Source:
		s.source(l)
	}
}

// interact renders the prompt and plays one typed line. A blank entry
// resumes the script; end of input or an abandoned prompt ends the
// session.
func (s *session) interact() {
	dir, err := os.Getwd()
	if err != nil {
		dir = "?"
	}

	p, err := prompt.Render(s.template, prompt.Context{
		Next: s.executed.Next(),
		Dir:  dir,
	})
	if err != nil {
		s.reporter.Report(err)
		s.transition(Done)

		return
	}

	text, err := s.read(p)

	switch {
	case err == nil:

	case errors.Is(err, ui.ErrAborted):
		s.log.Debug("prompt abandoned")
		s.transition(Done)

		return

	default:
		if !errors.Is(err, io.EOF) {
			s.reporter.Report(err)
		}

		s.transition(Done)

		return
	}

	s.typed++

	l := line.New("interactive", s.typed, text)

	if l.Kind == line.Pause {
		s.transition(Running)

		return
	}

	s.play(l)
}

// append records an executed command, before it runs, everywhere a
// command is remembered: the session history, the synthesized script,
// and the reader's in-place history.
func (s *session) append(l *line.T) {
	s.executed.Append(l.Raw)

	if err := s.output.Write(l.Replay()); err != nil {
		s.reporter.Report(err)
	}

	if s.reader != nil {
		s.reader.Append(l.Raw)
	}
}

// command runs a shell command line: transient assignments applied,
// the registry consulted, the subshell as fallback.
func (s *session) command(l *line.T) {
	defer s.environ.ClearTransient()

	for _, a := range l.Vars {
		s.environ.SetTransient(a.Name, s.environ.Expand(a.Value))
	}

	start := time.Now()
	status, err := s.dispatch(l)

	s.log.Debug("dispatched",
		zap.String("loc", l.Loc()),
		zap.Int("status", status),
		zap.Duration("in", time.Since(start)))

	if err != nil {
		s.reporter.Report(fmt.Errorf("%s: %w", l.Loc(), err))
	}
}

// dispatch resolves and invokes the command on the line l.
func (s *session) dispatch(l *line.T) (int, error) {
	if len(l.Args) > 0 {
		h, err := s.names.Resolve(l.Args[0])

		switch {
		case err == nil:
			out, status, err := h.Invoke(l.Args, s.environ.Snapshot())
			if out != "" {
				if !strings.HasSuffix(out, "\n") {
					out += "\n"
				}

				fmt.Fprint(s.stdout, out)
			}

			return status, err

		case !errors.Is(err, registry.ErrUnknown):
			return -1, err
		}
	}

	return shell.Run(l.Text, s.environ.Environ(), s.stdout, s.stderr)
}

// export makes the line's assignments persistent.
func (s *session) export(l *line.T) {
	for _, a := range l.Vars {
		s.environ.SetPersistent(a.Name, s.environ.Expand(a.Value))
	}
}

// directive handles the import and from forms.
func (s *session) directive(l *line.T) {
	fromDir := filepath.Dir(l.Name)

	var err error
	if l.Callable == "" {
		err = s.loader.Import(l.Module, fromDir)
	} else {
		err = s.loader.From(l.Module, l.Callable, l.Alias, fromDir)
	}

	if err != nil {
		s.reporter.Report(fmt.Errorf("%s: %w", l.Loc(), err))
	}

	if s.record {
		if err := s.output.Write(l.Replay()); err != nil {
			s.reporter.Report(err)
		}
	}
}

// source plays another script inline. Scripted source directives are
// spliced away at load time, so this only happens for lines typed at
// the prompt. The session is already at a prompt, so pauses in the
// sourced script have nothing to do and are skipped.
func (s *session) source(l *line.T) {
	sub, err := script.Load(l.Path)
	if err != nil {
		s.reporter.Report(fmt.Errorf("%s: %w", l.Loc(), err))

		return
	}

	for _, ln := range sub.Lines {
		if ln.Kind == line.Pause {
			continue
		}

		s.play(ln)

		if s.state == Done {
			return
		}
	}
}

// read fetches one line from the reader.
func (s *session) read(p string) (string, error) {
	if s.reader == nil {
		return "", io.EOF
	}

	return s.reader.Read(p)
}

// transition moves the session to state next.
func (s *session) transition(next State) {
	if s.state == next {
		return
	}

	s.log.Debug("state",
		zap.Stringer("from", s.state),
		zap.Stringer("to", next))

	s.state = next
}
