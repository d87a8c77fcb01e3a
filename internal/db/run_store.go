package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/position.report/internal/report"
)

// Run is one persisted processing run.
type Run struct {
	RunID        string
	InputDir     string
	OutputDir    string
	FileCount    int
	ColumnCount  int
	FailureCount int
	StartedAt    int64 // unix nanos
	FinishedAt   int64
}

// RunStat is one persisted (file, sensor) statistic belonging to a run.
type RunStat struct {
	FileName    string
	Device      string
	Sensor      int
	Mean        [3]float64
	MaxDistance float64
}

// RunError is one persisted per-file diagnostic belonging to a run.
type RunError struct {
	FileName string
	Error    string
}

// RunStore persists processing runs and their statistics.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore backed by the given database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db.DB}
}

// RecordRun persists the run row plus every per-pair statistic and per-file
// diagnostic from the summary in a single transaction. If run.RunID is
// empty a UUID is generated. Returns the run ID.
func (s *RunStore) RecordRun(run *Run, summary *report.Summary) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.FinishedAt == 0 {
		run.FinishedAt = time.Now().UnixNano()
	}
	run.FileCount = summary.Files
	run.ColumnCount = summary.Columns
	run.FailureCount = len(summary.Failures)

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, input_dir, output_dir, file_count, column_count,
			failure_count, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.InputDir, run.OutputDir, run.FileCount, run.ColumnCount,
		run.FailureCount, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_stats (
			run_id, file_name, device, sensor_idx,
			mean_x, mean_y, mean_z, max_distance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare stats insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range summary.Records {
		for key, st := range rec.Stats {
			if _, err := stmt.Exec(
				run.RunID, rec.FileName, key.Device, key.Sensor,
				st.Mean[0], st.Mean[1], st.Mean[2], st.MaxDistance,
			); err != nil {
				return "", fmt.Errorf("insert stat for %s/%s: %w", rec.FileName, key, err)
			}
		}
	}

	for _, fe := range summary.Failures {
		if _, err := tx.Exec(
			`INSERT INTO run_errors (run_id, file_name, error) VALUES (?, ?, ?)`,
			run.RunID, fe.FileName, fe.Err.Error(),
		); err != nil {
			return "", fmt.Errorf("insert error for %s: %w", fe.FileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.RunID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, input_dir, output_dir, file_count, column_count,
		       failure_count, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.InputDir, &r.OutputDir, &r.FileCount, &r.ColumnCount,
			&r.FailureCount, &r.StartedAt, &r.FinishedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// StatsForRun returns the statistics persisted for one run, ordered by file
// name then device then sensor index.
func (s *RunStore) StatsForRun(runID string) ([]RunStat, error) {
	rows, err := s.db.Query(`
		SELECT file_name, device, sensor_idx, mean_x, mean_y, mean_z, max_distance
		FROM run_stats
		WHERE run_id = ?
		ORDER BY file_name, device, sensor_idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run stats: %w", err)
	}
	defer rows.Close()

	var stats []RunStat
	for rows.Next() {
		var st RunStat
		if err := rows.Scan(
			&st.FileName, &st.Device, &st.Sensor,
			&st.Mean[0], &st.Mean[1], &st.Mean[2], &st.MaxDistance,
		); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// ErrorsForRun returns the per-file diagnostics persisted for one run.
func (s *RunStore) ErrorsForRun(runID string) ([]RunError, error) {
	rows, err := s.db.Query(`
		SELECT file_name, error
		FROM run_errors
		WHERE run_id = ?
		ORDER BY file_name`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run errors: %w", err)
	}
	defer rows.Close()

	var errs []RunError
	for rows.Next() {
		var re RunError
		if err := rows.Scan(&re.FileName, &re.Error); err != nil {
			return nil, err
		}
		errs = append(errs, re)
	}
	return errs, rows.Err()
}
