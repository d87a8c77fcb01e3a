package report

import (
	"fmt"
	"strconv"
)

// Table is a rectangular row set ready for CSV serialization. All rows have
// the same width as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// MissingCell marks a pair absent from a file. It is the empty string,
// distinct from a legitimate zero-valued statistic.
const MissingCell = ""

const fileNameColumn = "FileName"

var axisNames = [3]string{"X", "Y", "Z"}

// AverageTable projects each file's mean positions onto the full column
// union: one row per record, three columns (X, Y, Z) per registered pair.
// Row order follows the record order, which is file enumeration order.
func AverageTable(cols *Columns, records []FileRecord) Table {
	keys := cols.Keys()

	header := make([]string, 0, 1+3*len(keys))
	header = append(header, fileNameColumn)
	for _, key := range keys {
		for _, axis := range axisNames {
			header = append(header, fmt.Sprintf("%s_%s", key, axis))
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 1, len(header))
		row[0] = rec.FileName
		for _, key := range keys {
			if st, ok := rec.Stats[key]; ok {
				row = append(row,
					formatValue(st.Mean[0]),
					formatValue(st.Mean[1]),
					formatValue(st.Mean[2]))
			} else {
				row = append(row, MissingCell, MissingCell, MissingCell)
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// MaxDistanceTable projects each file's max distances onto the full column
// union: one row per record, one column per registered pair.
func MaxDistanceTable(cols *Columns, records []FileRecord) Table {
	keys := cols.Keys()

	header := make([]string, 0, 1+len(keys))
	header = append(header, fileNameColumn)
	for _, key := range keys {
		header = append(header, fmt.Sprintf("%s_Dist", key))
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 1, len(header))
		row[0] = rec.FileName
		for _, key := range keys {
			if st, ok := rec.Stats[key]; ok {
				row = append(row, formatValue(st.MaxDistance))
			} else {
				row = append(row, MissingCell)
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// formatValue renders a statistic at full float64 precision, no rounding.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
