// Released under an MIT license. See LICENSE.

// Package ui provides the line reader a demo uses while paused.
//
// With a terminal on stdin, lines come from a line editor with
// editing, navigation, and a persistent history file. Without one,
// lines come straight from stdin. Either way the session sees the
// same thing: one line at a time.
package ui

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/klmitch/demo/internal/system/history"
)

// ErrAborted is returned by Read when the line is given up on rather
// than submitted.
var ErrAborted = liner.ErrPromptAborted

// T (ui) reads lines for a paused demo.
type T struct {
	cli      *liner.State
	cooked   liner.ModeApplier
	uncooked liner.ModeApplier

	in  *bufio.Reader
	out io.Writer

	histpath string
}

type ui = T

// New creates a ui reading from stdin. With interactive set it uses a
// line editor primed from the history file at histpath; an empty
// histpath means the default location.
func New(interactive bool, out io.Writer, histpath string) *T {
	u := &ui{out: out, histpath: histpath}

	if !interactive {
		u.in = bufio.NewReader(os.Stdin)

		return u
	}

	// Capture the terminal mode on either side of creating the line
	// editor. The editor's raw mode is applied only while prompting,
	// so the commands a demo runs see the terminal they expect.
	u.cooked, _ = liner.TerminalMode()

	u.cli = liner.NewLiner()

	u.uncooked, _ = liner.TerminalMode()

	u.cli.SetCtrlCAborts(true)

	// A missing history file just means a first run.
	_ = history.Load(u.histpath, u.cli.ReadHistory)

	return u
}

// Append adds line to the editor's in-place history, so typing up
// arrow at the next pause recalls it.
func (u *ui) Append(line string) {
	if u.cli == nil || line == "" {
		return
	}

	u.cli.AppendHistory(line)
}

// Close saves the editor's history and restores the terminal.
func (u *ui) Close() error {
	if u.cli == nil {
		return nil
	}

	err := history.Save(u.histpath, u.cli.WriteHistory)

	if cerr := u.cli.Close(); err == nil {
		err = cerr
	}

	return err
}

// Read displays prompt and reads one line. The returned line has no
// trailing newline. Read reports ErrAborted when the line was given
// up on and io.EOF when there is no more input.
func (u *ui) Read(prompt string) (string, error) {
	if u.cli == nil {
		if _, err := io.WriteString(u.out, prompt); err != nil {
			return "", err
		}

		line, err := u.in.ReadString('\n')
		if err != nil && (line == "" || err != io.EOF) {
			return "", err
		}

		return strings.TrimRight(line, "\r\n"), nil
	}

	if u.uncooked != nil {
		_ = u.uncooked.ApplyMode()
	}

	line, err := u.cli.Prompt(prompt)

	if u.cooked != nil {
		_ = u.cooked.ApplyMode()
	}

	return line, err
}
