// Package hdf adapts HDF5 recording files to the report.Source interface
// via the gonum bindings to libhdf5. Each top-level group in a file is a
// device; a device may carry a [samples, sensors, 3] position dataset.
package hdf

import (
	"fmt"

	"gonum.org/v1/hdf5"

	"github.com/banshee-data/position.report/internal/report"
)

// DefaultDataset is the dataset name that holds position samples inside
// each device group.
const DefaultDataset = "Position"

// NewOpener returns a report.Opener that reads position data from the
// named dataset of each top-level device group. An empty dataset name
// selects DefaultDataset.
func NewOpener(dataset string) report.Opener {
	if dataset == "" {
		dataset = DefaultDataset
	}
	return func(path string) (report.Source, error) {
		f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
		if err != nil {
			return nil, err
		}
		return &source{file: f, dataset: dataset}, nil
	}
}

type source struct {
	file    *hdf5.File
	dataset string
}

// Devices lists the file's top-level object names in container order.
func (s *source) Devices() ([]string, error) {
	n, err := s.file.NumObjects()
	if err != nil {
		return nil, err
	}
	devices := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := s.file.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		devices = append(devices, name)
	}
	return devices, nil
}

// Positions reads the device's position dataset. A top-level object that is
// not a group, or a group without the dataset, is reported as absent rather
// than as an error.
func (s *source) Positions(device string) (report.PositionSet, bool, error) {
	g, err := s.file.OpenGroup(device)
	if err != nil {
		return report.PositionSet{}, false, nil
	}
	defer g.Close()

	dset, err := g.OpenDataset(s.dataset)
	if err != nil {
		return report.PositionSet{}, false, nil
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return report.PositionSet{}, false, fmt.Errorf("dataset %s/%s: %w", device, s.dataset, err)
	}
	if len(dims) != 3 || dims[2] != 3 {
		return report.PositionSet{}, false,
			fmt.Errorf("dataset %s/%s has shape %v, want [samples, sensors, 3]", device, s.dataset, dims)
	}

	ps := report.PositionSet{Samples: int(dims[0]), Sensors: int(dims[1])}
	ps.Data = make([]float64, ps.Samples*ps.Sensors*3)
	if len(ps.Data) > 0 {
		if err := dset.Read(&ps.Data); err != nil {
			return report.PositionSet{}, false, fmt.Errorf("reading %s/%s: %w", device, s.dataset, err)
		}
	}
	return ps, true, nil
}

func (s *source) Close() error {
	return s.file.Close()
}
