// Released under an MIT license. See LICENSE.

// Package extension loads demo commands from Go source modules.
//
// An extension module is an ordinary Go file. Every exported function
// of type
//
//	func(args []string, env map[string]string) (string, error)
//
// becomes a command, registered under its lower-cased name. Modules
// are interpreted, not compiled, so a presenter can edit one mid-demo
// and import it again under another name without rebuilding anything.
package extension

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"github.com/klmitch/demo/internal/registry"
)

// callable is the signature a module function must have to become a
// command.
type callable = func(args []string, env map[string]string) (string, error)

// module is one loaded extension file.
type module struct {
	interp   *interp.Interpreter
	pkg      string
	imported bool
}

// T (extension) resolves, interprets, and registers extension modules.
type T struct {
	dirs    []string
	log     *zap.Logger
	reg     *registry.T
	modules map[string]*module
}

type extension = T

// New creates an extension loader registering into reg. Module
// references are searched for in dirs after the importing script's
// own directory.
func New(reg *registry.T, dirs []string, log *zap.Logger) *T {
	if log == nil {
		log = zap.NewNop()
	}

	return &extension{
		dirs:    dirs,
		log:     log,
		reg:     reg,
		modules: map[string]*module{},
	}
}

// Import loads the named module and registers every exported function
// with the command signature. Importing a module a second time does
// nothing.
func (e *extension) Import(name, fromDir string) error {
	m, err := e.load(name, fromDir)
	if err != nil {
		return err
	}

	if m.imported {
		return nil
	}

	exported := m.interp.Symbols(m.pkg)[m.pkg]

	var errs []error

	count := 0
	for sym, v := range exported {
		fn, ok := v.Interface().(callable)
		if !ok {
			e.log.Debug("skipping symbol",
				zap.String("module", name),
				zap.String("symbol", sym),
				zap.String("type", v.Type().String()))

			continue
		}

		count++

		if err := e.reg.Register(lower(sym), handler(fn)); err != nil {
			errs = append(errs, err)
		}
	}

	if count == 0 {
		return fmt.Errorf("no commands in module %s", name)
	}

	m.imported = true

	e.log.Debug("imported module",
		zap.String("module", name),
		zap.Int("commands", count))

	return errors.Join(errs...)
}

// From loads the named module and registers just the named callable,
// under alias if given.
func (e *extension) From(name, call, alias, fromDir string) error {
	m, err := e.load(name, fromDir)
	if err != nil {
		return err
	}

	v, err := m.interp.Eval(m.pkg + "." + call)
	if err != nil && lower(call) == call {
		// Script writers think in command names. Try the exported
		// spelling too.
		v, err = m.interp.Eval(m.pkg + "." + upper(call))
	}

	if err != nil {
		return fmt.Errorf("no such callable %s in module %s", call, name)
	}

	fn, ok := v.Interface().(callable)
	if !ok {
		return fmt.Errorf("no such callable %s in module %s", call, name)
	}

	if alias == "" {
		alias = lower(call)
	}

	return e.reg.Register(alias, handler(fn))
}

// load interprets the named module, reusing the interpreter from any
// earlier load.
func (e *extension) load(name, fromDir string) (*module, error) {
	path, err := e.resolve(name, fromDir)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if m, found := e.modules[abs]; found {
		return m, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}

	i := interp.New(interp.Options{})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}

	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}

	m := &module{interp: i, pkg: f.Name.Name}
	e.modules[abs] = m

	e.log.Debug("loaded module",
		zap.String("module", name),
		zap.String("path", abs),
		zap.String("package", m.pkg))

	return m, nil
}

// resolve turns a module reference into the path of a Go file. The
// importing script's directory wins, then the configured extension
// directories, then the working directory.
func (e *extension) resolve(name, fromDir string) (string, error) {
	file := name
	if !strings.HasSuffix(file, ".go") {
		file += ".go"
	}

	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}

		return "", fmt.Errorf("no module named %s", name)
	}

	dirs := make([]string, 0, len(e.dirs)+2)
	if fromDir != "" {
		dirs = append(dirs, fromDir)
	}

	dirs = append(dirs, e.dirs...)
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no module named %s", name)
}

// handler adapts a module function to the registry's handler
// capability. A failed command reports status 1.
func handler(fn callable) registry.Handler {
	return registry.Func(func(args []string, env map[string]string) (string, int, error) {
		out, err := fn(args, env)
		if err != nil {
			return out, 1, err
		}

		return out, 0, nil
	})
}

func lower(s string) string {
	r, n := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[n:]
}

func upper(s string) string {
	r, n := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[n:]
}
