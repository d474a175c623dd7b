package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencontratos/contratista/internal/model"
)

// ListTextFiles walks the source tree recursively and returns every *.txt
// path in sorted order. Year-based subdirectories are the norm, so a flat
// glob is not enough.
func ListTextFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadDocument loads one contract file. The process code comes from the
// filename alone: the pending filter keys the database on filename-derived
// codes, and the update must use the same key.
func ReadDocument(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return model.Document{
		Path:        path,
		Name:        name,
		ProcessCode: CodeFromFilename(name),
		Text:        string(data),
	}, nil
}
