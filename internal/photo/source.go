package photo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File is one selected file of an import batch.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Source yields a batch of files in selection order.
type Source interface {
	Files(ctx context.Context) ([]File, error)
}

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
}

// IsImageName reports whether name has a known image extension.
func IsImageName(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// DirSource selects every image file of a directory, sorted by name.
type DirSource struct {
	Dir string
}

// Files implements Source.
func (d DirSource) Files(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo directory: %w", err)
	}
	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsImageName(entry.Name()) {
			continue
		}
		path := filepath.Join(d.Dir, entry.Name())
		files = append(files, File{
			Name: entry.Name(),
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}
	return files, nil
}
