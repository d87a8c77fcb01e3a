package report

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource implements Source over in-memory position data so extraction
// can be tested without a container library.
type fakeSource struct {
	devices   []string
	positions map[string]PositionSet
	devErr    error
	posErr    map[string]error
	closed    bool
}

func (f *fakeSource) Devices() ([]string, error) {
	if f.devErr != nil {
		return nil, f.devErr
	}
	return f.devices, nil
}

func (f *fakeSource) Positions(device string) (PositionSet, bool, error) {
	if err := f.posErr[device]; err != nil {
		return PositionSet{}, false, err
	}
	ps, ok := f.positions[device]
	return ps, ok, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// fakeOpener serves fakeSource instances by path.
func fakeOpener(files map[string]*fakeSource) Opener {
	return func(path string) (Source, error) {
		src, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("cannot open %q", path)
		}
		return src, nil
	}
}

// positionsFor builds a PositionSet from per-sensor sample lists. Every
// sensor must have the same number of samples.
func positionsFor(sensors ...[][3]float64) PositionSet {
	ps := PositionSet{Sensors: len(sensors)}
	if len(sensors) > 0 {
		ps.Samples = len(sensors[0])
	}
	ps.Data = make([]float64, ps.Samples*ps.Sensors*3)
	for sensor, samples := range sensors {
		for s, sample := range samples {
			base := (s*ps.Sensors + sensor) * 3
			ps.Data[base] = sample[0]
			ps.Data[base+1] = sample[1]
			ps.Data[base+2] = sample[2]
		}
	}
	return ps
}

// rampSamples returns n samples (x, x+1, x+2) for x in 0..n-1.
func rampSamples(n int) [][3]float64 {
	samples := make([][3]float64, n)
	for i := range samples {
		x := float64(i)
		samples[i] = [3]float64{x, x + 1, x + 2}
	}
	return samples
}

func TestExtractFileStats(t *testing.T) {
	src := &fakeSource{
		devices: []string{"DeviceA"},
		positions: map[string]PositionSet{
			"DeviceA": positionsFor(rampSamples(10)),
		},
	}
	ext := &Extractor{
		Open:    fakeOpener(map[string]*fakeSource{"/in/a.hdf5": src}),
		Columns: NewColumns(),
	}

	rec, err := ext.ExtractFile(DataFile{Name: "a.hdf5", Path: "/in/a.hdf5"})
	require.NoError(t, err)
	require.True(t, src.closed)

	st, ok := rec.Stats[SensorKey{Device: "DeviceA", Sensor: 0}]
	require.True(t, ok)
	assert.InDelta(t, 4.5, st.Mean[0], 1e-12)
	assert.InDelta(t, 5.5, st.Mean[1], 1e-12)
	assert.InDelta(t, 6.5, st.Mean[2], 1e-12)
	// Farthest sample is (9, 10, 11).
	assert.InDelta(t, math.Sqrt(302), st.MaxDistance, 1e-12)
}

func TestExtractFileOrderIndependence(t *testing.T) {
	samples := rampSamples(25)
	shuffled := make([][3]float64, len(samples))
	copy(shuffled, samples)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	stats := make([]PairStat, 0, 2)
	for _, order := range [][][3]float64{samples, shuffled} {
		src := &fakeSource{
			devices:   []string{"DeviceA"},
			positions: map[string]PositionSet{"DeviceA": positionsFor(order)},
		}
		ext := &Extractor{
			Open:    fakeOpener(map[string]*fakeSource{"x": src}),
			Columns: NewColumns(),
		}
		rec, err := ext.ExtractFile(DataFile{Name: "x", Path: "x"})
		require.NoError(t, err)
		stats = append(stats, rec.Stats[SensorKey{Device: "DeviceA", Sensor: 0}])
	}

	assert.InDelta(t, stats[0].Mean[0], stats[1].Mean[0], 1e-12)
	assert.InDelta(t, stats[0].Mean[1], stats[1].Mean[1], 1e-12)
	assert.InDelta(t, stats[0].Mean[2], stats[1].Mean[2], 1e-12)
	assert.Equal(t, stats[0].MaxDistance, stats[1].MaxDistance)
}

func TestExtractFileZeroSamplesExcluded(t *testing.T) {
	src := &fakeSource{
		devices: []string{"DeviceA"},
		positions: map[string]PositionSet{
			// Two sensors, zero samples: averaging would produce NaN.
			"DeviceA": {Samples: 0, Sensors: 2, Data: nil},
		},
	}
	ext := &Extractor{
		Open:    fakeOpener(map[string]*fakeSource{"x": src}),
		Columns: NewColumns(),
	}

	rec, err := ext.ExtractFile(DataFile{Name: "x", Path: "x"})
	require.NoError(t, err)
	assert.Empty(t, rec.Stats)
	assert.Equal(t, 0, ext.Columns.Len())
}

func TestExtractFileSkipsDevicesWithoutPositions(t *testing.T) {
	src := &fakeSource{
		devices: []string{"Bare", "DeviceA"},
		positions: map[string]PositionSet{
			"DeviceA": positionsFor(rampSamples(3)),
		},
	}
	ext := &Extractor{
		Open:    fakeOpener(map[string]*fakeSource{"x": src}),
		Columns: NewColumns(),
	}

	rec, err := ext.ExtractFile(DataFile{Name: "x", Path: "x"})
	require.NoError(t, err)
	assert.Len(t, rec.Stats, 1)
	assert.Equal(t, []SensorKey{{Device: "DeviceA", Sensor: 0}}, ext.Columns.Keys())
}

func TestExtractFileRegistrationOrder(t *testing.T) {
	cols := NewColumns()
	open := fakeOpener(map[string]*fakeSource{
		"/in/1.hdf5": {
			devices: []string{"DeviceB", "DeviceA"},
			positions: map[string]PositionSet{
				"DeviceB": positionsFor(rampSamples(2), rampSamples(2)),
				"DeviceA": positionsFor(rampSamples(2)),
			},
		},
		"/in/2.hdf5": {
			devices: []string{"DeviceA", "DeviceC"},
			positions: map[string]PositionSet{
				"DeviceA": positionsFor(rampSamples(2)),
				"DeviceC": positionsFor(rampSamples(2)),
			},
		},
	})
	ext := &Extractor{Open: open, Columns: cols}

	_, err := ext.ExtractFile(DataFile{Name: "1.hdf5", Path: "/in/1.hdf5"})
	require.NoError(t, err)
	_, err = ext.ExtractFile(DataFile{Name: "2.hdf5", Path: "/in/2.hdf5"})
	require.NoError(t, err)

	// File order first, then within-file visit order; duplicates from the
	// second file do not move.
	want := []SensorKey{
		{Device: "DeviceB", Sensor: 0},
		{Device: "DeviceB", Sensor: 1},
		{Device: "DeviceA", Sensor: 0},
		{Device: "DeviceC", Sensor: 0},
	}
	assert.Equal(t, want, cols.Keys())
}

func TestExtractFileFailureRegistersNothing(t *testing.T) {
	cols := NewColumns()
	boom := errors.New("corrupt dataset")
	open := fakeOpener(map[string]*fakeSource{
		"/in/bad.hdf5": {
			devices: []string{"DeviceA", "DeviceB"},
			positions: map[string]PositionSet{
				"DeviceA": positionsFor(rampSamples(4)),
			},
			posErr: map[string]error{"DeviceB": boom},
		},
	})
	ext := &Extractor{Open: open, Columns: cols}

	rec, err := ext.ExtractFile(DataFile{Name: "bad.hdf5", Path: "/in/bad.hdf5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// DeviceA extracted before the failure, but the whole file is dropped:
	// no record and no columns.
	assert.Empty(t, rec.Stats)
	assert.Equal(t, 0, cols.Len())
}

func TestExtractFileOpenFailure(t *testing.T) {
	ext := &Extractor{
		Open:    fakeOpener(map[string]*fakeSource{}),
		Columns: NewColumns(),
	}

	_, err := ext.ExtractFile(DataFile{Name: "missing.hdf5", Path: "/in/missing.hdf5"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}
