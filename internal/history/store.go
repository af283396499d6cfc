// Package history persists a row per scan run so operators can see how their
// library reconciles over time. The store is supplemental: a broken history
// database never fails a scan.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded scan.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	LibraryRoot   string
	PlatformCount int
	RomCount      int
	MatchedCount  int
	MissingOnly   bool
	ReportPath    string
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database inside dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS scan_runs (
        id TEXT PRIMARY KEY,
        started_at TEXT NOT NULL,
        finished_at TEXT NOT NULL,
        library_root TEXT NOT NULL,
        platform_count INTEGER NOT NULL,
        rom_count INTEGER NOT NULL,
        matched_count INTEGER NOT NULL,
        missing_only INTEGER NOT NULL,
        report_path TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create scan_runs table: %w", err)
	}
	return nil
}

// Record inserts one completed run.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scan_runs (
            id, started_at, finished_at, library_root,
            platform_count, rom_count, matched_count, missing_only, report_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.LibraryRoot,
		run.PlatformCount,
		run.RomCount,
		run.MatchedCount,
		boolToInt(run.MissingOnly),
		run.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, library_root,
            platform_count, rom_count, matched_count, missing_only, report_path
        FROM scan_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		var missingOnly int
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.LibraryRoot,
			&run.PlatformCount, &run.RomCount, &run.MatchedCount, &missingOnly, &run.ReportPath,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.MissingOnly = missingOnly != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan runs: %w", err)
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
