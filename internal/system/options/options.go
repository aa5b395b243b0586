package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	configPath       string
	debug            bool
	files            []string
	interactive      bool
	output           string
	promptTemplate   string
	recordDirectives bool
	version          bool
	usage            = `demo

Usage:
  demo [-d] [-c PATH] [-o PATH] [-p TEMPLATE] [--record-directives] FILE...
  demo -h
  demo -v

Arguments:
  FILE  Demo scripts, played in order.

Options:
  -c, --config=PATH      Read configuration from PATH instead of ~/.demorc.
  -d, --debug            Enable debugging output.
  -o, --output=PATH      Write the commands this session executes to a new
                         demo script at PATH.
  -p, --prompt=TEMPLATE  Prompt template for interactive use.
  --record-directives    Record import directives in the output script.
  -h, --help             Display this help.
  -v, --version          Print demo version.

A demo script plays one command at a time. A blank line pauses the
script and presents a prompt; commands typed there are played exactly
as scripted ones are, and a blank entry resumes the script. The default
prompt template, unless configured otherwise, is "[%(nextcmd)s]> ".
`
)

func Config() string {
	return configPath
}

func Debug() bool {
	return debug
}

func Files() []string {
	return files
}

func Interactive() bool {
	return interactive
}

func Output() string {
	return output
}

func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	configPath, _ = opts.String("--config")
	debug, _ = opts.Bool("--debug")
	output, _ = opts.String("--output")
	promptTemplate, _ = opts.String("--prompt")
	recordDirectives, _ = opts.Bool("--record-directives")
	version, _ = opts.Bool("--version")

	files, _ = opts["FILE"].([]string)

	interactive = isatty.IsTerminal(os.Stdin.Fd())
}

func Prompt() string {
	return promptTemplate
}

func RecordDirectives() bool {
	return recordDirectives
}

func Version() bool {
	return version
}
