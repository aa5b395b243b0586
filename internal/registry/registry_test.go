package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(args []string, env map[string]string) (string, int, error) {
	return "ok", 0, nil
}

func TestRegisterAndResolve(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("greet", Func(ok)))

	h, err := r.Resolve("greet")
	require.NoError(t, err)

	out, status, err := h.Invoke(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 0, status)
}

func TestDuplicateRejected(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("greet", Func(ok)))

	err := r.Register("greet", Func(ok))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUnknown(t *testing.T) {
	r := New()

	_, err := r.Resolve("nope")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestBadRegistrations(t *testing.T) {
	r := New()

	assert.Error(t, r.Register("", Func(ok)))
	assert.Error(t, r.Register("broken", nil))
}

func TestNames(t *testing.T) {
	r := New()

	require.NoError(t, r.Register("unset", Func(ok)))
	require.NoError(t, r.Register("cd", Func(ok)))
	require.NoError(t, r.Register("exit", Func(ok)))

	assert.Equal(t, []string{"cd", "exit", "unset"}, r.Names())
}
