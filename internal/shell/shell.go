// Released under an MIT license. See LICENSE.

// Package shell runs one command line under the system shell.
//
// The command runs in its own process group with SIGINT forwarded to
// it for as long as it runs. A control-C aborts the command and only
// the command; the session reports the failure and carries on.
package shell

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/klmitch/demo/internal/system/process"
)

// ExitError reports a command that did not finish with status 0.
type ExitError struct {
	Code   int    // Exit status, or -1 if the command was signaled.
	Reason string // Human-readable cause.
}

func (e *ExitError) Error() string {
	return e.Reason
}

// Run passes text to the shell with the given environment. Output is
// streamed to stdout and stderr as the command produces it. The
// returned status is the command's exit status.
func Run(text string, environ []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command(binary(environ), "-c", text)

	cmd.Env = environ
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.SysProcAttr = process.SysProcAttr()

	// Take delivery of SIGINT before the command exists. A control-C
	// that lands while the command is starting waits in the channel
	// for the forwarder instead of reaching the default handler.
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)

	if err := cmd.Start(); err != nil {
		signal.Stop(intr)

		return -1, err
	}

	// Pass SIGINT along to the command's process group for the life
	// of the command.
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-intr:
				process.InterruptGroup(cmd.Process.Pid)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()

	signal.Stop(intr)
	close(done)

	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return exit.ExitCode(), &ExitError{
				Code:   exit.ExitCode(),
				Reason: exit.ProcessState.String(),
			}
		}

		return -1, err
	}

	return 0, nil
}

// binary resolves the shell to use against the PATH in environ.
func binary(environ []string) string {
	path := ""

	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, "PATH="); ok {
			path = v

			break
		}
	}

	arg0, executable, err := adapted.LookPath("sh", path)
	if err != nil || !executable {
		return "/bin/sh"
	}

	return arg0
}
