// Command position-report processes a directory of HDF5 position
// recordings and writes two CSV tables into an output directory: per-file
// per-sensor average positions and maximum distances from the origin.
//
// Usage:
//
//	position-report [flags] <input_dir> <output_dir>
//	position-report -db <path> migrate <up|down|status>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/position.report/internal/config"
	"github.com/banshee-data/position.report/internal/db"
	"github.com/banshee-data/position.report/internal/hdf"
	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/report"
	"github.com/banshee-data/position.report/internal/version"
)

var (
	configPath = flag.String("config", "", "Optional YAML options file")
	dbPath     = flag.String("db", "", "Optional run-history SQLite database")
	extension  = flag.String("ext", "", "Input file extension (default .hdf5)")
	dataset    = flag.String("dataset", "", "Per-device dataset name (default Position)")
	quiet      = flag.Bool("quiet", false, "Mute progress output (per-file failures still print)")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: position-report [flags] <input_dir> <output_dir>\n")
	fmt.Fprintf(os.Stderr, "       position-report -db <path> migrate <up|down|status>\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVer {
		fmt.Println("position-report", version.String())
		return
	}

	args := flag.Args()
	if len(args) >= 1 && args[0] == "migrate" {
		runMigrateCommand(args[1:])
		return
	}
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}

	opts := loadOptions()
	if *quiet {
		monitoring.SetLogger(nil)
	}

	started := time.Now()
	summary, err := report.Run(report.Options{
		InputDir:  args[0],
		OutputDir: args[1],
		Extension: opts.Extension,
		Open:      hdf.NewOpener(opts.Dataset),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.HistoryDB != "" {
		if err := recordHistory(opts.HistoryDB, args[0], args[1], started, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error: recording run history: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Processing completed successfully: %d files, %d device/sensor pairs", summary.Files, summary.Columns)
	if len(summary.Failures) > 0 {
		fmt.Printf(" (%d files failed)", len(summary.Failures))
	}
	fmt.Println()
}

// loadOptions merges the optional YAML file under the flags; flags win.
func loadOptions() config.Config {
	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *extension != "" {
		cfg.Extension = *extension
	}
	if *dataset != "" {
		cfg.Dataset = *dataset
	}
	if *dbPath != "" {
		cfg.HistoryDB = *dbPath
	}
	return cfg
}

func recordHistory(path, inputDir, outputDir string, started time.Time, summary *report.Summary) error {
	history, err := db.Open(path)
	if err != nil {
		return err
	}
	defer history.Close()

	if err := history.MigrateUp(); err != nil {
		return err
	}

	store := db.NewRunStore(history)
	runID, err := store.RecordRun(&db.Run{
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: started.UnixNano(),
	}, summary)
	if err != nil {
		return err
	}
	monitoring.Logf("run %s recorded to %s", runID, path)
	return nil
}

// runMigrateCommand handles the 'migrate' subcommand dispatching for the
// run-history database.
func runMigrateCommand(args []string) {
	if *dbPath == "" {
		log.Fatal("migrate requires -db <path>")
	}
	if len(args) < 1 {
		log.Fatal("Usage: position-report -db <path> migrate <up|down|status>")
	}

	history, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open history database: %v", err)
	}
	defer history.Close()

	switch args[0] {
	case "up":
		if err := history.MigrateUp(); err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		fmt.Println("migrations applied")

	case "down":
		if err := history.MigrateDown(); err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		fmt.Println("rolled back one migration")

	case "status":
		version, dirty, err := history.MigrateVersion()
		if err != nil {
			log.Fatalf("migrate status failed: %v", err)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)

	default:
		log.Fatalf("unknown migrate action %q", args[0])
	}
}
