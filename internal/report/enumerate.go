package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the file suffix used to discover recording files.
const DefaultExtension = ".hdf5"

// DataFile is one discovered input file.
type DataFile struct {
	Name string
	Path string
}

// ListDataFiles returns the files in dir whose name ends in ext, sorted
// lexically by name. Subdirectories are ignored. os.ReadDir already returns
// entries in filename order, which fixes the row order of the output tables
// and the cross-file column discovery order.
func ListDataFiles(dir, ext string) ([]DataFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", dir, err)
	}

	var files []DataFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, DataFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return files, nil
}
