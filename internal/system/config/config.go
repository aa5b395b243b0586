// Released under an MIT license. See LICENSE.

// Package config reads the optional ~/.demorc file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klmitch/demo/internal/prompt"
)

// T (config) is everything ~/.demorc can set. Command-line flags win
// over the file; the file wins over the defaults.
type T struct {
	Prompt           string   `yaml:"prompt"`
	Output           string   `yaml:"output"`
	Debug            bool     `yaml:"debug"`
	History          string   `yaml:"history"`
	RecordDirectives bool     `yaml:"record_directives"`
	Extensions       []string `yaml:"extensions"`
}

// Default returns the built-in configuration.
func Default() *T {
	return &T{Prompt: prompt.Default}
}

// Load reads the configuration at path. An empty path means the
// default location, which is allowed to be absent; a path given
// explicitly is not.
func Load(path string) (*T, error) {
	c := Default()

	optional := path == ""
	if optional {
		path = Path()
		if path == "" {
			return c, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return c, nil
		}

		return nil, err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return c, nil
}

// Path returns the default configuration file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".demorc")
}
