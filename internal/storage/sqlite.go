// Package storage provides SQLite-based persistence for finished runs and
// the access codes handed out by the secret passage.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one completed playthrough.
type Run struct {
	ID           int64
	RunID        string  // UUID assigned when the run started
	Duration     float64 // Gameplay seconds, overlays excluded
	RoomsCleared int
	Secrets      int
	Falls        int
	FinishedAt   time.Time
}

// AccessCode is a code generated when a player found a secret.
type AccessCode struct {
	ID        int64
	Code      string
	RoomID    string
	CreatedAt time.Time
}

// RunStats aggregates all recorded runs.
type RunStats struct {
	Runs         int
	BestDuration float64
	AvgDuration  float64
	TotalFalls   int64
	TotalSecrets int64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			duration_secs REAL NOT NULL,
			rooms_cleared INTEGER NOT NULL DEFAULT 0,
			secrets INTEGER NOT NULL DEFAULT 0,
			falls INTEGER NOT NULL DEFAULT 0,
			finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_duration ON runs(duration_secs);

		CREATE TABLE IF NOT EXISTS access_codes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL,
			room_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_access_codes_code ON access_codes(code);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		return 0, errors.New("storage: run has no run id")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, duration_secs, rooms_cleared, secrets, falls)
		 VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.Duration, r.RoomsCleared, r.Secrets, r.Falls,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, run_id, duration_secs, rooms_cleared, secrets, falls, finished_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// FastestRuns retrieves the quickest runs, fastest first.
func (s *Store) FastestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, run_id, duration_secs, rooms_cleared, secrets, falls, finished_at
		 FROM runs
		 ORDER BY duration_secs ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// BestRun returns the fastest run, or nil if no run was recorded.
func (s *Store) BestRun() (*Run, error) {
	runs, err := s.FastestRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finishedAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Duration, &r.RoomsCleared, &r.Secrets, &r.Falls, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.FinishedAt = parseTime(finishedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(duration_secs), 0), COALESCE(AVG(duration_secs), 0),
		        COALESCE(SUM(falls), 0), COALESCE(SUM(secrets), 0), MAX(finished_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestDuration, &stats.AvgDuration, &stats.TotalFalls, &stats.TotalSecrets, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveAccessCode records a code generated in the given room.
func (s *Store) SaveAccessCode(code, roomID string) error {
	_, err := s.db.Exec(
		"INSERT INTO access_codes (code, room_id) VALUES (?, ?)",
		code, roomID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save access code: %w", err)
	}
	return nil
}

// AccessCodes retrieves the most recent access codes, newest first.
func (s *Store) AccessCodes(limit int) ([]AccessCode, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, code, room_id, created_at
		 FROM access_codes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query access codes: %w", err)
	}
	defer rows.Close()

	var codes []AccessCode
	for rows.Next() {
		var c AccessCode
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Code, &c.RoomID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		codes = append(codes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return codes, nil
}

// parseTime handles DATETIME columns, which the driver may return either
// as time.Time or as text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
