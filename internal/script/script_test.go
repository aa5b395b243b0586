package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klmitch/demo/internal/script/line"
)

func write(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func texts(s *T) []string {
	var texts []string
	for _, l := range s.Lines {
		texts = append(texts, l.Raw)
	}

	return texts
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.demo")

	write(t, path, "#!/usr/bin/env demo\n## setup\necho one\n\necho two\n")

	s, err := Load(path)
	require.NoError(t, err)

	require.Len(t, s.Lines, 4)
	assert.Equal(t, line.Comment, s.Lines[0].Kind)
	assert.Equal(t, line.Command, s.Lines[1].Kind)
	assert.Equal(t, line.Pause, s.Lines[2].Kind)
	assert.Equal(t, line.Command, s.Lines[3].Kind)

	// The shebang never makes it into the sequence.
	assert.Equal(t, []string{"## setup", "echo one", "", "echo two"}, texts(s))
}

func TestConcatenation(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.demo")
	b := filepath.Join(dir, "b.demo")

	write(t, a, "echo a\n")
	write(t, b, "echo b\n")

	s, err := Load(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo a", "echo b"}, texts(s))
}

func TestSourceSplice(t *testing.T) {
	dir := t.TempDir()

	write(t, filepath.Join(dir, "main.demo"),
		"echo before\nsource sub/extra.demo\necho after\n")
	write(t, filepath.Join(dir, "sub", "extra.demo"),
		"#!/usr/bin/env demo\necho middle\n. more.demo\n")
	write(t, filepath.Join(dir, "sub", "more.demo"),
		"echo deeper\n")

	s, err := Load(filepath.Join(dir, "main.demo"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"echo before",
		"echo middle",
		"echo deeper",
		"echo after",
	}, texts(s))
}

func TestCycle(t *testing.T) {
	dir := t.TempDir()

	write(t, filepath.Join(dir, "a.demo"), "source b.demo\n")
	write(t, filepath.Join(dir, "b.demo"), "source a.demo\n")

	_, err := Load(filepath.Join(dir, "a.demo"))

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestSelfSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.demo")

	write(t, path, "source a.demo\n")

	_, err := Load(path)

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestRepeatedSourceIsNotACycle(t *testing.T) {
	dir := t.TempDir()

	write(t, filepath.Join(dir, "a.demo"), ". b.demo\n. b.demo\n")
	write(t, filepath.Join(dir, "b.demo"), "echo b\n")

	s, err := Load(filepath.Join(dir, "a.demo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"echo b", "echo b"}, texts(s))
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.demo"))
	assert.Error(t, err)
}

func TestMalformedSourceKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.demo")

	write(t, path, "source\n")

	s, err := Load(path)
	require.NoError(t, err)

	// The malformed directive stays in the sequence so the failure
	// is reported when the line plays, not while loading.
	require.Len(t, s.Lines, 1)
	assert.Equal(t, line.Source, s.Lines[0].Kind)
	assert.Error(t, s.Lines[0].Err)
}
