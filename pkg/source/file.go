package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/treezoom/pkg/errors"
)

// File reads a dataset from the local filesystem.
type File struct {
	path string
}

// NewFile returns a source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Kind() string { return "file" }

// Location returns the absolute path when it can be resolved.
func (f *File) Location() string {
	if abs, err := filepath.Abs(f.path); err == nil {
		return abs
	}
	return f.path
}

func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "dataset %s", f.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read dataset %s", f.path)
	}
	return data, nil
}
