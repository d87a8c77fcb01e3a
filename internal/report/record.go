package report

import "fmt"

// PairStat holds the two statistics computed for one (file, sensor) pair.
// A pair either has both statistics or is absent from the file's record;
// partial stats are not representable.
type PairStat struct {
	Mean        [3]float64
	MaxDistance float64
}

// FileRecord holds one input file's statistics, keyed by the pairs actually
// present in that file. The map may be a strict subset of the final column
// union, or nil for a file that failed to extract.
type FileRecord struct {
	FileName string
	Stats    map[SensorKey]PairStat
}

// FileError ties a recoverable extraction failure to the file that caused it.
type FileError struct {
	FileName string
	Err      error
}

func (e FileError) Error() string {
	return fmt.Sprintf("processing file %q: %v", e.FileName, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }
