package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/klmitch/demo/internal/registry"
)

const helpers = `package main

import "strings"

func Shout(args []string, env map[string]string) (string, error) {
	return strings.ToUpper(strings.Join(args[1:], " ")), nil
}

func Greet(args []string, env map[string]string) (string, error) {
	return "hello, " + env["USER"], nil
}

func Mismatched(n int) int {
	return n
}

func hidden(args []string, env map[string]string) (string, error) {
	return "", nil
}
`

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	require.NoError(t, e.Import("helpers", dir))
	assert.Equal(t, []string{"greet", "shout"}, reg.Names())

	h, err := reg.Resolve("shout")
	require.NoError(t, err)

	out, status, err := h.Invoke([]string{"shout", "go", "loud"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "GO LOUD", out)
}

func TestImportTwiceIsANoop(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	require.NoError(t, e.Import("helpers", dir))
	require.NoError(t, e.Import("helpers", dir))
	assert.Equal(t, []string{"greet", "shout"}, reg.Names())
}

func TestFrom(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	require.NoError(t, e.From("helpers", "Greet", "", dir))

	h, err := reg.Resolve("greet")
	require.NoError(t, err)

	out, _, err := h.Invoke([]string{"greet"}, map[string]string{"USER": "alex"})
	require.NoError(t, err)
	assert.Equal(t, "hello, alex", out)
}

func TestFromAlias(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	require.NoError(t, e.From("helpers", "shout", "yell", dir))

	_, err := reg.Resolve("yell")
	assert.NoError(t, err)
}

func TestFromMissingCallable(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	err := e.From("helpers", "Vanish", "", dir)
	assert.EqualError(t, err, "no such callable Vanish in module helpers")

	// The wrong shape is as missing as not being there at all.
	err = e.From("helpers", "Mismatched", "", dir)
	assert.EqualError(t, err, "no such callable Mismatched in module helpers")
}

func TestNoCommands(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "empty.go", "package main\n\nfunc quiet() {}\n")

	e := New(registry.New(), nil, zap.NewNop())

	assert.EqualError(t, e.Import("empty", dir), "no commands in module empty")
}

func TestMissingModule(t *testing.T) {
	e := New(registry.New(), nil, zap.NewNop())

	assert.EqualError(t, e.Import("ghost", t.TempDir()), "no module named ghost")
}

func TestSearchPath(t *testing.T) {
	scripts := t.TempDir()
	shared := t.TempDir()

	writeModule(t, shared, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, []string{shared}, zap.NewNop())

	// Nothing next to the script; the configured directory serves it.
	require.NoError(t, e.Import("helpers", scripts))
	assert.Contains(t, reg.Names(), "shout")
}

func TestLiteralPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "helpers.go", helpers)

	reg := registry.New()
	e := New(reg, nil, zap.NewNop())

	require.NoError(t, e.Import(filepath.Join(dir, "helpers.go"), ""))
	assert.Contains(t, reg.Names(), "greet")
}
