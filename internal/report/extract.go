package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PositionSet is one device's position dataset: Samples time steps for
// Sensors tracked points, three coordinates per point per step. Data is
// row-major [sample][sensor][coordinate] with len Samples*Sensors*3.
type PositionSet struct {
	Samples int
	Sensors int
	Data    []float64
}

// At returns the coordinate for the given sample, sensor and axis (0=X,
// 1=Y, 2=Z).
func (p PositionSet) At(sample, sensor, axis int) float64 {
	return p.Data[(sample*p.Sensors+sensor)*3+axis]
}

// Source is one open recording file. Implementations own the container
// format; the extractor only sees device names and position datasets.
type Source interface {
	// Devices lists the top-level device names in the file, in container order.
	Devices() ([]string, error)

	// Positions returns the named device's position dataset. ok is false
	// when the device records no positions in this file, which is not an
	// error.
	Positions(device string) (ps PositionSet, ok bool, err error)

	Close() error
}

// Opener opens one recording file by path.
type Opener func(path string) (Source, error)

// Extractor computes per-sensor statistics one file at a time and registers
// discovered (device, sensor) pairs into a shared column set.
type Extractor struct {
	Open    Opener
	Columns *Columns
}

// ExtractFile processes one recording and returns its sparse statistics.
// On error the file contributes nothing: no record and no column
// registrations. The caller decides whether to continue the batch.
func (e *Extractor) ExtractFile(f DataFile) (FileRecord, error) {
	src, err := e.Open(f.Path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("open: %w", err)
	}
	defer src.Close()

	devices, err := src.Devices()
	if err != nil {
		return FileRecord{}, fmt.Errorf("listing devices: %w", err)
	}

	rec := FileRecord{FileName: f.Name, Stats: make(map[SensorKey]PairStat)}
	var order []SensorKey
	for _, device := range devices {
		ps, ok, err := src.Positions(device)
		if err != nil {
			return FileRecord{}, fmt.Errorf("device %q: %w", device, err)
		}
		if !ok {
			continue
		}
		for sensor := 0; sensor < ps.Sensors; sensor++ {
			st, ok := sensorStat(ps, sensor)
			if !ok {
				// Zero samples: averaging an empty set would produce NaN,
				// so the pair is treated as absent from this file.
				continue
			}
			key := SensorKey{Device: device, Sensor: sensor}
			rec.Stats[key] = st
			order = append(order, key)
		}
	}

	// Register only after the whole file extracted cleanly, so a file that
	// fails partway through leaves no stray columns in the union.
	for _, key := range order {
		e.Columns.Register(key)
	}
	return rec, nil
}

// sensorStat computes the per-axis mean and the maximum Euclidean distance
// from the origin across all samples of one sensor. ok is false when the
// sensor has no samples.
func sensorStat(ps PositionSet, sensor int) (PairStat, bool) {
	if ps.Samples == 0 {
		return PairStat{}, false
	}

	xs := make([]float64, ps.Samples)
	ys := make([]float64, ps.Samples)
	zs := make([]float64, ps.Samples)
	dists := make([]float64, ps.Samples)
	for s := 0; s < ps.Samples; s++ {
		x := ps.At(s, sensor, 0)
		y := ps.At(s, sensor, 1)
		z := ps.At(s, sensor, 2)
		xs[s], ys[s], zs[s] = x, y, z
		dists[s] = math.Sqrt(x*x + y*y + z*z)
	}

	return PairStat{
		Mean: [3]float64{
			stat.Mean(xs, nil),
			stat.Mean(ys, nil),
			stat.Mean(zs, nil),
		},
		MaxDistance: floats.Max(dists),
	}, true
}
