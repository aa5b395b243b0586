/*
Demo plays shell sessions from a script, one command at a time.

A demo script is a list of shell commands plus a little stage
direction:

    # Comments starting with a single "#" are shown to the audience.
    ## Comments starting with two are not.
    echo commands are echoed before they run

    !echo a leading "!" runs a command without echoing it

The blank line above pauses playback until enter is pressed at the
prompt. Commands typed at that prompt run exactly as scripted ones
do, and a blank entry resumes the script.

For more detail, see: https://github.com/klmitch/demo

Demo is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/klmitch/demo/internal/report"
	"github.com/klmitch/demo/internal/session"
	"github.com/klmitch/demo/internal/system/config"
	"github.com/klmitch/demo/internal/system/options"
	"github.com/klmitch/demo/internal/ui"
)

const version = "0.1"

func fatal(debug bool, log *zap.Logger, err error) {
	report.New(os.Stderr, debug, log).Report(err)
	os.Exit(1)
}

func main() {
	options.Parse()

	if options.Version() {
		fmt.Println("demo " + version)

		return
	}

	cfg, err := config.Load(options.Config())
	if err != nil {
		fatal(options.Debug(), nil, err)
	}

	if p := options.Prompt(); p != "" {
		cfg.Prompt = p
	}

	if o := options.Output(); o != "" {
		cfg.Output = o
	}

	debug := cfg.Debug || options.Debug()
	record := cfg.RecordDirectives || options.RecordDirectives()

	log := zap.NewNop()
	if debug {
		log, err = zap.NewDevelopment()
		if err != nil {
			fatal(debug, nil, err)
		}
	}

	term := ui.New(options.Interactive(), os.Stdout, cfg.History)

	s, err := session.New(session.Config{
		Files:            options.Files(),
		Output:           cfg.Output,
		Prompt:           cfg.Prompt,
		RecordDirectives: record,
		Extensions:       cfg.Extensions,
		Reader:           term,
		Debug:            debug,
		Log:              log,
	})
	if err != nil {
		_ = term.Close()
		fatal(debug, log, err)
	}

	err = s.Run()

	if cerr := term.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		fatal(debug, log, err)
	}
}
