package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTablePair(t *testing.T) {
	dir := t.TempDir()
	average := Table{
		Header: []string{"FileName", "DeviceA_Sensor0_X", "DeviceA_Sensor0_Y", "DeviceA_Sensor0_Z"},
		Rows:   [][]string{{"a.hdf5", "1", "2", "3"}, {"b.hdf5", "", "", ""}},
	}
	maxDist := Table{
		Header: []string{"FileName", "DeviceA_Sensor0_Dist"},
		Rows:   [][]string{{"a.hdf5", "4"}, {"b.hdf5", ""}},
	}

	require.NoError(t, WriteTablePair(dir, average, maxDist))

	got := readCSV(t, filepath.Join(dir, AverageFileName))
	assert.Equal(t, [][]string{
		{"FileName", "DeviceA_Sensor0_X", "DeviceA_Sensor0_Y", "DeviceA_Sensor0_Z"},
		{"a.hdf5", "1", "2", "3"},
		{"b.hdf5", "", "", ""},
	}, got)

	got = readCSV(t, filepath.Join(dir, MaxDistanceFileName))
	assert.Equal(t, [][]string{
		{"FileName", "DeviceA_Sensor0_Dist"},
		{"a.hdf5", "4"},
		{"b.hdf5", ""},
	}, got)

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteTablePairMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	err := WriteTablePair(dir, Table{Header: []string{"FileName"}}, Table{Header: []string{"FileName"}})
	assert.Error(t, err)
}

func TestWriteTablePairOverwrites(t *testing.T) {
	dir := t.TempDir()
	tbl := Table{Header: []string{"FileName"}, Rows: [][]string{{"a.hdf5"}}}
	require.NoError(t, WriteTablePair(dir, tbl, tbl))

	tbl2 := Table{Header: []string{"FileName"}, Rows: [][]string{{"b.hdf5"}}}
	require.NoError(t, WriteTablePair(dir, tbl2, tbl2))

	got := readCSV(t, filepath.Join(dir, AverageFileName))
	assert.Equal(t, [][]string{{"FileName"}, {"b.hdf5"}}, got)
}
