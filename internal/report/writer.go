package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names, fixed by the report format.
const (
	AverageFileName     = "average_positions.csv"
	MaxDistanceFileName = "max_distances.csv"
)

// WriteTablePair writes both output tables into dir as a matched pair. Each
// table is rendered to a temporary file first and the pair is renamed into
// place only after both rendered cleanly, so a write failure never leaves
// one table without the other.
func WriteTablePair(dir string, average, maxDist Table) error {
	tmpAvg, err := writeTemp(dir, AverageFileName, average)
	if err != nil {
		return err
	}
	tmpMax, err := writeTemp(dir, MaxDistanceFileName, maxDist)
	if err != nil {
		os.Remove(tmpAvg)
		return err
	}

	if err := os.Rename(tmpAvg, filepath.Join(dir, AverageFileName)); err != nil {
		os.Remove(tmpAvg)
		os.Remove(tmpMax)
		return fmt.Errorf("placing %s: %w", AverageFileName, err)
	}
	if err := os.Rename(tmpMax, filepath.Join(dir, MaxDistanceFileName)); err != nil {
		os.Remove(tmpMax)
		return fmt.Errorf("placing %s: %w", MaxDistanceFileName, err)
	}
	return nil
}

// writeTemp renders one table to a temporary CSV file in dir and returns
// its path. The temp file lands in the destination directory so the final
// rename never crosses filesystems.
func writeTemp(dir, name string, tbl Table) (string, error) {
	f, err := os.CreateTemp(dir, name+".tmp-")
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(tbl.Header)
	if werr == nil {
		werr = w.WriteAll(tbl.Rows) // WriteAll flushes
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing %s: %w", name, werr)
	}
	return f.Name(), nil
}
