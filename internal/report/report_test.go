package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestPlain(t *testing.T) {
	var b bytes.Buffer

	r := New(&b, false, zap.NewNop())
	r.Report(fmt.Errorf("loading intro.demo: %w", errors.New("no such file")))

	assert.Equal(t, "demo: loading intro.demo: no such file\n", b.String())
}

func TestDebugChain(t *testing.T) {
	var b bytes.Buffer

	inner := errors.New("connection refused")
	middle := fmt.Errorf("fetching data: %w", inner)

	r := New(&b, true, zap.NewNop())
	r.Report(fmt.Errorf("running step 4: %w", middle))

	assert.Equal(t,
		"demo: running step 4: fetching data: connection refused\n"+
			"  caused by: fetching data: connection refused\n"+
			"  caused by: connection refused\n",
		b.String())
}

func TestNilError(t *testing.T) {
	var b bytes.Buffer

	New(&b, true, nil).Report(nil)

	assert.Empty(t, b.String())
}

func TestBrokenWriter(t *testing.T) {
	r := New(brokenWriter{}, true, nil)

	assert.NotPanics(t, func() {
		r.Report(errors.New("original problem"))
	})
}
