// Released under an MIT license. See LICENSE.

// Package line classifies the lines of a demo script.
//
// Classification is pure: the same name, line number, and text always
// produce the same line. Anything that depends on the environment or the
// filesystem happens later, when the line is played.
package line

import (
	"errors"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"
)

// Kind tags a classified line.
type Kind int

// Line kinds.
const (
	Command Kind = iota // Run it.
	Comment             // Echo it, if visible.
	Export              // Make assignments persistent.
	Import              // Extend the command registry.
	Pause               // Stop and prompt.
	Shebang             // First-line interpreter comment.
	Source              // Splice in another script.
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "command"
	case Comment:
		return "comment"
	case Export:
		return "export"
	case Import:
		return "import"
	case Pause:
		return "pause"
	case Shebang:
		return "shebang"
	case Source:
		return "source"
	}

	return "unknown"
}

// Assign is one NAME=value word from the front of a command.
type Assign struct {
	Name  string
	Value string
}

// ParseError describes a directive that does not match its grammar.
type ParseError struct {
	Loc string // Rendered as name:line.
	Msg string
}

func (e *ParseError) Error() string {
	return e.Loc + ": " + e.Msg
}

// T (line) is one classified line of a demo script.
type T struct {
	Kind Kind   // What this line is.
	Name string // Label for the source of this line.
	Lno  int    // Line number, starting at 1.
	Raw  string // Trimmed text, suppression marker included.
	Echo bool   // False when display is suppressed.

	Vars []Assign // Leading NAME=value words, in order.
	Text string   // Command text after any leading assignments.
	Args []string // Words of Text. Nil when Text cannot be split.

	Module   string // Module named by an import directive.
	Callable string // Callable named by a from directive.
	Alias    string // Alias, if the from directive has an as clause.
	Path     string // Path named by a source directive.

	Err error // Problem noticed while classifying.
}

type line = T

// New classifies one line of the named demo script.
func New(name string, lno int, text string) *T {
	l := &line{Name: name, Lno: lno, Raw: strings.TrimSpace(text)}

	// The suppression marker is peeled before anything else so that
	// suppressed comments and directives still classify as themselves.
	rest := l.Raw
	l.Echo = true

	if strings.HasPrefix(rest, "!") {
		l.Echo = false
		rest = rest[1:]
	}

	switch {
	case lno == 1 && strings.HasPrefix(rest, "#!"):
		l.Kind = Shebang
		l.Echo = false

	case strings.HasPrefix(rest, "##"):
		l.Kind = Comment
		l.Echo = false

	case strings.HasPrefix(rest, "#"):
		l.Kind = Comment

	case rest == "":
		l.Kind = Pause
		l.Echo = false

	default:
		l.command(rest)
	}

	return l
}

// Loc is the name:line location of the line, for error messages.
func (l *line) Loc() string {
	return l.Name + ":" + strconv.Itoa(l.Lno)
}

// Replay is the text written when synthesizing a new script. The
// suppression marker is presentation, not meaning, so it is dropped.
func (l *line) Replay() string {
	if strings.HasPrefix(l.Raw, "!") {
		return strings.TrimSpace(l.Raw[1:])
	}

	return l.Raw
}

func (l *line) String() string {
	return l.Raw
}

// command classifies everything that is not a comment, pause, or shebang.
func (l *line) command(rest string) {
	l.Kind = Command
	l.Text = rest

	fields, err := split(rest)
	if err != nil {
		// Leave the text unsplit. The subshell gets the raw text
		// and complains about the quoting itself.
		return
	}

	switch fields[0].val {
	case "import", "from":
		l.directive(Import, fields)

		return

	case "source", ".":
		l.directive(Source, fields)

		return

	case "export":
		l.Kind = Export

		fields = fields[1:]
	}

	for len(fields) > 0 && strings.Contains(fields[0].val, "=") {
		name, value, _ := strings.Cut(fields[0].val, "=")
		l.Vars = append(l.Vars, Assign{Name: name, Value: value})

		fields = fields[1:]
	}

	if len(fields) == 0 {
		l.Kind = Export
		l.Text = ""

		return
	}

	l.Text = rest[fields[0].off:]
	l.Args = make([]string, len(fields))

	for i, f := range fields {
		l.Args[i] = f.val
	}
}

// directive parses the import, from, and source forms.
func (l *line) directive(kind Kind, fields []field) {
	l.Kind = kind

	args := make([]string, len(fields))
	for i, f := range fields {
		args[i] = f.val
	}

	l.Args = args

	switch args[0] {
	case "import":
		if len(args) != 2 {
			l.fail(`invalid "import" statement; use as "import <module>"`)

			return
		}

		l.Module = args[1]

	case "from":
		if len(args) != 4 && len(args) != 6 ||
			args[2] != "import" ||
			(len(args) == 6 && args[4] != "as") {
			l.fail(`invalid "from" statement; use as "from <module> import <func> [as <alias>]"`)

			return
		}

		l.Module = args[1]
		l.Callable = args[3]

		if len(args) == 6 {
			l.Alias = args[5]
		}

	default:
		if len(args) != 2 {
			l.fail(`invalid "` + args[0] + `" statement; use as "` + args[0] + ` <file>"`)

			return
		}

		l.Path = args[1]
	}
}

func (l *line) fail(msg string) {
	l.Err = &ParseError{Loc: l.Loc(), Msg: msg}
}

// field is one word of a command and its byte offset in the text.
type field struct {
	val string
	off int
}

var errUnterminated = errors.New("unterminated quoted string")

// split breaks text into words, honoring single quotes, double quotes,
// and backslash escapes.
func split(text string) ([]field, error) {
	var fields []field

	i := 0
	for i < len(text) {
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}

		if i == len(text) {
			break
		}

		f := field{off: i}

		var b strings.Builder

		for i < len(text) && text[i] != ' ' && text[i] != '\t' {
			switch text[i] {
			case '\'':
				n := strings.IndexByte(text[i+1:], '\'')
				if n < 0 {
					return nil, errUnterminated
				}

				b.WriteString(text[i+1 : i+1+n])

				i += n + 2

			case '"':
				n := closing(text, i)
				if n < 0 {
					return nil, errUnterminated
				}

				b.WriteString(unescape(text[i+1 : n]))

				i = n + 1

			case '\\':
				if i+1 < len(text) {
					b.WriteByte(text[i+1])
					i += 2
				} else {
					b.WriteByte('\\')
					i++
				}

			default:
				b.WriteByte(text[i])
				i++
			}
		}

		f.val = b.String()

		fields = append(fields, f)
	}

	return fields, nil
}

// closing finds the double quote that closes the one at open.
func closing(text string, open int) int {
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return -1
}

// unescape processes escape sequences in double-quoted text. Text with
// escapes it cannot make sense of is passed through untouched.
func unescape(text string) string {
	if !strings.Contains(text, "\\") {
		return text
	}

	s, err := adapted.ActualBytes(text)
	if err != nil {
		return text
	}

	return s
}
