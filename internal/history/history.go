// Released under an MIT license. See LICENSE.

// Package history records the commands a demo session has executed.
//
// Every dispatched command appears exactly once, in dispatch order,
// whether it came from a script or was typed at the prompt. Comments,
// pauses, and directives are never recorded.
package history

// T (history) is an append-only list of executed commands.
type T struct {
	lines []string
}

type history = T

// New creates a new, empty history.
func New() *T {
	return &history{}
}

// Append adds text to the history h.
func (h *history) Append(text string) {
	h.lines = append(h.lines, text)
}

// Len returns the number of commands in the history h.
func (h *history) Len() int {
	return len(h.lines)
}

// Lines returns a copy of the history h, oldest first.
func (h *history) Lines() []string {
	lines := make([]string, len(h.lines))
	copy(lines, h.lines)

	return lines
}

// Next returns the ordinal of the next command to execute. The first
// command of a session is command 1.
func (h *history) Next() int {
	return len(h.lines) + 1
}
