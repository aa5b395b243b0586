// Released under an MIT license. See LICENSE.

// Package registry maps command names to the handlers that implement
// them. A name can be bound once; there is no shadowing. Names that
// resolve to nothing fall through to the subshell, so the registry
// itself has no default handler.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by the registry.
var (
	ErrDuplicate = errors.New("command already registered")
	ErrUnknown   = errors.New("unknown command")
)

// Handler implements a registered command.
type Handler interface {
	// Invoke runs the command with its split words and a snapshot of
	// the session environment. It returns the text the command wrote,
	// an exit status, and any error.
	Invoke(args []string, env map[string]string) (string, int, error)
}

// Func adapts an ordinary function to the Handler interface.
type Func func(args []string, env map[string]string) (string, int, error)

// Invoke calls the function f.
func (f Func) Invoke(args []string, env map[string]string) (string, int, error) {
	return f(args, env)
}

// T (registry) is a set of named commands.
type T struct {
	handlers map[string]Handler
}

type registry = T

// New creates a new, empty registry.
func New() *T {
	return &registry{handlers: map[string]Handler{}}
}

// Names returns the names bound in the registry r, sorted.
func (r *registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Register binds the name to the handler h in the registry r.
func (r *registry) Register(name string, h Handler) error {
	if name == "" {
		return errors.New("empty command name")
	}

	if h == nil {
		return fmt.Errorf("%q: nil handler", name)
	}

	if _, found := r.handlers[name]; found {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}

	r.handlers[name] = h

	return nil
}

// Resolve retrieves the handler bound to the name in the registry r.
func (r *registry) Resolve(name string) (Handler, error) {
	h, found := r.handlers[name]
	if !found {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknown)
	}

	return h, nil
}
