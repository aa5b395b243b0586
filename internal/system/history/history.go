package history

import (
	"io"
	"os"
)

// Load reads the history file at path into read, the line editor's
// ReadHistory method. An empty path means the default location.
func Load(path string, read func(r io.Reader) (int, error)) error {
	f, err := open(path, os.Open)
	if err != nil {
		return err
	}

	_, err = read(f)
	if err != nil {
		return err
	}

	return f.Close()
}

// Save writes the line editor's history out through write, its
// WriteHistory method. An empty path means the default location.
func Save(path string, write func(w io.Writer) (int, error)) error {
	f, err := open(path, os.Create)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		return err
	}

	return f.Close()
}

func open(path string, op func(string) (*os.File, error)) (*os.File, error) {
	if path == "" {
		path = Default()
	}

	return op(path)
}
