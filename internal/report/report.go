// Released under an MIT license. See LICENSE.

// Package report presents errors to the person running a demo.
//
// A demo is a performance. Whatever goes wrong, the reporter writes a
// single calm line and the session moves on; the full cause chain and
// structured detail appear only in debug mode.
package report

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// T (report) writes error reports.
type T struct {
	w     io.Writer
	debug bool
	log   *zap.Logger
}

type report = T

// New creates a reporter writing to w. With debug set, reports include
// the whole cause chain.
func New(w io.Writer, debug bool, log *zap.Logger) *T {
	if log == nil {
		log = zap.NewNop()
	}

	return &report{w: w, debug: debug, log: log}
}

// Report describes err to the operator. It never fails and never
// panics; there is no useful place for a reporting error to go.
func (r *report) Report(err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(r.w, "demo: %s\n", err)

	if r.debug {
		for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
			_, _ = fmt.Fprintf(r.w, "  caused by: %s\n", cause)
		}
	}

	r.log.Debug("error reported", zap.Error(err))
}
