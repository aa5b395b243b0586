// Released under an MIT license. See LICENSE.

// Package prompt renders the interactive prompt template.
//
// Templates use %(name)s tokens. The two defined tokens are
// %(nextcmd)s, the ordinal of the next command, and %(currdir)s, the
// working directory. Anything else that looks like a token is an
// error; a demo with a broken prompt should fail before it starts
// rather than halfway through a presentation.
package prompt

import (
	"strconv"
	"strings"
)

// Default is the prompt used when no template is configured.
const Default = "[%(nextcmd)s]> "

// Context supplies the values tokens render to.
type Context struct {
	Next int    // Ordinal of the next command.
	Dir  string // Working directory.
}

// BadTokenError describes a template that cannot be rendered.
type BadTokenError struct {
	Template string
	Token    string // Empty when a token is left unterminated.
}

func (e *BadTokenError) Error() string {
	if e.Token == "" {
		return "unterminated token in prompt template " + strconv.Quote(e.Template)
	}

	return "unknown token " + strconv.Quote(e.Token) + " in prompt template " + strconv.Quote(e.Template)
}

// Check confirms that the template can be rendered.
func Check(template string) error {
	_, err := Render(template, Context{Next: 1, Dir: "/"})

	return err
}

// Render substitutes the tokens in template with values from ctx.
// A %% renders as a literal percent sign; a percent sign that does not
// open a token passes through unchanged.
func Render(template string, ctx Context) (string, error) {
	var b strings.Builder

	for i := 0; i < len(template); i++ {
		c := template[i]

		if c != '%' {
			b.WriteByte(c)

			continue
		}

		if i+1 < len(template) && template[i+1] == '%' {
			b.WriteByte('%')
			i++

			continue
		}

		if i+1 == len(template) || template[i+1] != '(' {
			b.WriteByte('%')

			continue
		}

		n := strings.Index(template[i:], ")s")
		if n < 0 {
			return "", &BadTokenError{Template: template}
		}

		switch name := template[i+2 : i+n]; name {
		case "nextcmd":
			b.WriteString(strconv.Itoa(ctx.Next))
		case "currdir":
			b.WriteString(ctx.Dir)
		default:
			return "", &BadTokenError{Template: template, Token: name}
		}

		i += n + 1
	}

	return b.String(), nil
}
