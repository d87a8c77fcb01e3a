package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/banshee-data/position.report/internal/monitoring"
)

// Options configures one processing run.
type Options struct {
	InputDir  string
	OutputDir string

	// Extension filters input files by suffix; defaults to DefaultExtension.
	Extension string

	// Open opens one recording file. Required; wire hdf.NewOpener for real
	// data or a fake Source in tests.
	Open Opener
}

// Summary describes one completed run. Failures carry the per-file
// diagnostics of recoverable extraction errors; a run with failures is
// still a completed run.
type Summary struct {
	Files    int
	Columns  int
	Keys     []SensorKey
	Records  []FileRecord
	Failures []FileError
}

// Run processes every recording in opts.InputDir and writes the two output
// tables into opts.OutputDir.
//
// Missing directories, an empty file set, and output write errors are
// fatal. A file that fails to extract contributes an all-missing row,
// reports on the diagnostic channel, and does not abort the batch.
func Run(opts Options) (*Summary, error) {
	if opts.Open == nil {
		return nil, errors.New("report: Options.Open is required")
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if err := requireDir(opts.InputDir, "input"); err != nil {
		return nil, err
	}
	if err := requireDir(opts.OutputDir, "output"); err != nil {
		return nil, err
	}

	files, err := ListDataFiles(opts.InputDir, opts.Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no valid %s data files found in %q", opts.Extension, opts.InputDir)
	}

	cols := NewColumns()
	extractor := &Extractor{Open: opts.Open, Columns: cols}

	records := make([]FileRecord, 0, len(files))
	var failures []FileError
	for _, f := range files {
		rec, err := extractor.ExtractFile(f)
		if err != nil {
			failures = append(failures, FileError{FileName: f.Name, Err: err})
			monitoring.Errorf("error processing file %q: %v", f.Name, err)
			// The failed file still occupies one all-missing row.
			rec = FileRecord{FileName: f.Name}
		} else {
			monitoring.Logf("processed %s: %d device/sensor pairs", f.Name, len(rec.Stats))
		}
		records = append(records, rec)
	}

	// The column union is complete only now that every file has been
	// scanned; both tables densify against the same final key set.
	average := AverageTable(cols, records)
	maxDist := MaxDistanceTable(cols, records)
	if err := WriteTablePair(opts.OutputDir, average, maxDist); err != nil {
		return nil, err
	}

	return &Summary{
		Files:    len(files),
		Columns:  cols.Len(),
		Keys:     cols.Keys(),
		Records:  records,
		Failures: failures,
	}, nil
}

func requireDir(path, label string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s directory %q does not exist", label, path)
	}
	return nil
}
