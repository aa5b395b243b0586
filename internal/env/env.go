// Released under an MIT license. See LICENSE.

// Package env provides the demo session's environment.
//
// The environment has two layers: a persistent layer, seeded from the
// process environment when the session starts, and a transient layer
// for NAME=value words typed in front of a single command. The
// transient layer is cleared after every dispatch, success or not.
package env

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// T (env) is a layered set of name to value mappings.
type T struct {
	persistent map[string]string
	transient  map[string]string
}

type env = T

// New creates a new env seeded with environ, a slice of KEY=value
// strings in the form returned by os.Environ.
func New(environ []string) *T {
	e := &env{
		persistent: make(map[string]string, len(environ)),
		transient:  map[string]string{},
	}

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			e.persistent[k] = v
		}
	}

	return e
}

// ClearTransient discards every transient mapping.
func (e *env) ClearTransient() {
	for k := range e.transient {
		delete(e.transient, k)
	}
}

// Environ renders a snapshot of the env e as a sorted slice of
// KEY=value strings, suitable for handing to a subprocess.
func (e *env) Environ() []string {
	m := e.Snapshot()

	environ := make([]string, 0, len(m))
	for k, v := range m {
		environ = append(environ, k+"="+v)
	}

	sort.Strings(environ)

	return environ
}

// Expand replaces $name and ${name} in text with values from the env e.
// A name with no value expands to the empty string. A leading tilde
// expands to the value of HOME.
func (e *env) Expand(text string) string {
	expanded := os.Expand(text, func(k string) string {
		v, _ := e.Resolve(k)

		return v
	})

	if strings.HasPrefix(expanded, "~") {
		home, _ := e.Resolve("HOME")

		return filepath.Join(home, expanded[1:])
	}

	return expanded
}

// Resolve retrieves the value associated with the name k in the env e.
// Transient mappings shadow persistent ones.
func (e *env) Resolve(k string) (string, bool) {
	if v, ok := e.transient[k]; ok {
		return v, true
	}

	v, ok := e.persistent[k]

	return v, ok
}

// SetPersistent associates the name k with the value v until the end of
// the session, or until k is unset.
func (e *env) SetPersistent(k, v string) {
	e.persistent[k] = v
}

// SetTransient associates the name k with the value v for the current
// command only.
func (e *env) SetTransient(k, v string) {
	e.transient[k] = v
}

// Snapshot returns the env e flattened into a fresh map. Mutating the
// result does not affect e.
func (e *env) Snapshot() map[string]string {
	m := make(map[string]string, len(e.persistent)+len(e.transient))

	for k, v := range e.persistent {
		m[k] = v
	}

	for k, v := range e.transient {
		m[k] = v
	}

	return m
}

// Unset deletes the name k from every layer of the env e.
func (e *env) Unset(k string) {
	delete(e.persistent, k)
	delete(e.transient, k)
}
