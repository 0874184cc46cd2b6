// Package store persists the run history: one row per completed
// simulation, recording what was simulated and where the signal went.
// Recording is best-effort; a history failure never fails a run.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,

    -- Spin system
    system_name TEXT NOT NULL,
    system_path TEXT NOT NULL,
    spins INTEGER NOT NULL,
    offset_hz REAL NOT NULL,

    -- Sequence parameters
    echo_time_s REAL NOT NULL,
    t12_s REAL NOT NULL,
    pulse_dwell_s REAL NOT NULL,
    pulse_samples INTEGER NOT NULL,
    calibration REAL NOT NULL,

    -- Acquisition
    acq_dwell_s REAL NOT NULL,
    points INTEGER NOT NULL,

    -- Output
    output_path TEXT NOT NULL,
    output_format TEXT NOT NULL,

    wall_time_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER PRIMARY KEY
);
`

// Run is one recorded simulation.
type Run struct {
	ID           int64
	CreatedAt    time.Time
	SystemName   string
	SystemPath   string
	Spins        int
	OffsetHz     float64
	EchoTime     float64
	T12          float64
	PulseDwell   float64
	PulseSamples int
	Calibration  float64
	AcqDwell     float64
	Points       int
	OutputPath   string
	OutputFormat string
	WallTime     time.Duration
}

// RunStore is a SQLite-backed run-history ledger.
type RunStore struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the run history database at path.
func Open(path string) (*RunStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_meta (version) VALUES (?)`, SchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}

	return &RunStore{db: db, path: path}, nil
}

// Record inserts a completed run and returns its id.
func (s *RunStore) Record(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			created_at, system_name, system_path, spins, offset_hz,
			echo_time_s, t12_s, pulse_dwell_s, pulse_samples, calibration,
			acq_dwell_s, points, output_path, output_format, wall_time_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.SystemName, r.SystemPath, r.Spins, r.OffsetHz,
		r.EchoTime, r.T12, r.PulseDwell, r.PulseSamples, r.Calibration,
		r.AcqDwell, r.Points, r.OutputPath, r.OutputFormat,
		r.WallTime.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent runs, newest first, up to limit
// (limit <= 0 means all).
func (s *RunStore) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, system_name, system_path, spins, offset_hz,
		       echo_time_s, t12_s, pulse_dwell_s, pulse_samples, calibration,
		       acq_dwell_s, points, output_path, output_format, wall_time_ms
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		var wallMs int64
		if err := rows.Scan(
			&r.ID, &created, &r.SystemName, &r.SystemPath, &r.Spins, &r.OffsetHz,
			&r.EchoTime, &r.T12, &r.PulseDwell, &r.PulseSamples, &r.Calibration,
			&r.AcqDwell, &r.Points, &r.OutputPath, &r.OutputFormat, &wallMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		r.WallTime = time.Duration(wallMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
