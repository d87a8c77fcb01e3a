// Package main renders the position-report output tables into charts: an
// HTML bar chart of max distances (one series per device/sensor pair) and a
// PNG scatter of mean X/Y positions.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/position.report/internal/report"
)

var (
	inputDir  = flag.String("input", ".", "Directory containing the report CSVs")
	outputDir = flag.String("output", ".", "Directory to write charts into")
)

// palette cycles glyph colors across sensor pairs on the scatter plot.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	distHeader, distRows, err := readTable(filepath.Join(*inputDir, report.MaxDistanceFileName))
	if err != nil {
		log.Fatalf("Failed to read max-distance table: %v", err)
	}
	if err := renderDistanceChart(distHeader, distRows, filepath.Join(*outputDir, "max_distances.html")); err != nil {
		log.Fatalf("Failed to render distance chart: %v", err)
	}

	avgHeader, avgRows, err := readTable(filepath.Join(*inputDir, report.AverageFileName))
	if err != nil {
		log.Fatalf("Failed to read average table: %v", err)
	}
	if err := renderPositionScatter(avgHeader, avgRows, filepath.Join(*outputDir, "average_positions.png")); err != nil {
		log.Fatalf("Failed to render position scatter: %v", err)
	}

	log.Printf("Charts written to %s", *outputDir)
}

// readTable loads a report CSV and returns its header and data rows.
func readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return rows[0], rows[1:], nil
}

// renderDistanceChart draws one bar series per pair column, x-axis by file.
// Missing cells become gaps rather than zero bars.
func renderDistanceChart(header []string, rows [][]string, path string) error {
	fileNames := make([]string, len(rows))
	for i, row := range rows {
		fileNames[i] = row[0]
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Max Distances", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Max distance from origin", Subtitle: fmt.Sprintf("%d files", len(rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(fileNames)

	for col := 1; col < len(header); col++ {
		series := make([]opts.BarData, len(rows))
		for i, row := range rows {
			if row[col] == report.MissingCell {
				series[i] = opts.BarData{Value: nil}
				continue
			}
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return fmt.Errorf("column %q row %d: %w", header[col], i+1, err)
			}
			series[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(strings.TrimSuffix(header[col], "_Dist"), series)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}

// renderPositionScatter plots mean X against mean Y for every pair, one
// point per file per pair.
func renderPositionScatter(header []string, rows [][]string, path string) error {
	p := plot.New()
	p.Title.Text = "Mean positions"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	// Columns come in X/Y/Z triples per pair; walk the X columns.
	pairIdx := 0
	for col := 1; col+1 < len(header); col += 3 {
		pts := make(plotter.XYs, 0, len(rows))
		for _, row := range rows {
			if row[col] == report.MissingCell {
				continue
			}
			x, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return fmt.Errorf("column %q: %w", header[col], err)
			}
			y, err := strconv.ParseFloat(row[col+1], 64)
			if err != nil {
				return fmt.Errorf("column %q: %w", header[col+1], err)
			}
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
		if len(pts) == 0 {
			pairIdx++
			continue
		}

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Color = palette[pairIdx%len(palette)]
		p.Add(scatter)
		p.Legend.Add(strings.TrimSuffix(header[col], "_X"), scatter)
		pairIdx++
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
