// Package report implements cross-file tabulation of per-sensor position
// statistics.
//
// A batch run scans a directory of recording files, computes the mean XYZ
// position and the maximum Euclidean distance from the origin for every
// (device, sensor) pair in every file, and projects the per-file results
// onto the ordered union of all pairs seen across the whole batch. Files
// are heterogeneous: no two are guaranteed to share devices or sensor
// counts, so column widths are only fixed once every file has been
// observed. Pairs absent from a file are emitted as empty cells, never as
// zeros and never by shifting columns.
//
// Reading the container format itself lives behind the Source interface;
// see internal/hdf for the HDF5 implementation.
package report
