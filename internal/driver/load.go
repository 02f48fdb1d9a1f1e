package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"contractgen/internal/diag"
	"contractgen/internal/source"
)

// listGoFiles returns the sorted non-test Go files of dir, skipping the
// generated output.
func listGoFiles(dir, output string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if name == output || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// loadFiles reads paths into a FileSet. Unreadable files are reported as
// IO4001 and left out.
func loadFiles(dir string, paths []string, bag *diag.Bag) (*source.FileSet, []source.FileID) {
	fs := source.NewFileSetWithBase(dir)
	ids := make([]source.FileID, 0, len(paths))
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			virtual := fs.AddVirtual(path, nil)
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: virtual},
				fmt.Sprintf("failed to load file: %v", err)))
			continue
		}
		ids = append(ids, id)
	}
	return fs, ids
}
