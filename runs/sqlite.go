// Package runs records play attempts in a SQLite database.
package runs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeDied      Outcome = "died"
	OutcomeRestarted Outcome = "restarted"
	OutcomeQuit      Outcome = "quit"
)

// Run is one attempt at a level, from load to death, restart or quit.
type Run struct {
	ID       string
	Level    string
	Outcome  Outcome
	Duration time.Duration
	Jumps    int
	Spawns   int
	EndedAt  time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at dbPath. A leading ~ expands to the
// home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("runs: empty database path")
	}
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("runs: expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("runs: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("runs: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("runs: connect: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("runs: migrate: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level TEXT NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			jumps INTEGER NOT NULL DEFAULT 0,
			spawns INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_duration ON runs(level, duration_ms DESC);
	`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores r, assigning an ID and end time when they are unset.
func (s *Store) Save(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, level, outcome, duration_ms, jumps, spawns, ended_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Level, string(r.Outcome), r.Duration.Milliseconds(), r.Jumps, r.Spawns, r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return r, fmt.Errorf("runs: save %s: %w", r.ID, err)
	}
	return r, nil
}

// Longest returns the longest runs on level, longest first.
func (s *Store) Longest(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level, outcome, duration_ms, jumps, spawns, ended_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY duration_ms DESC, ended_at ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("runs: query %s: %w", level, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r        Run
			outcome  string
			duration int64
			ended    int64
		)
		if err := rows.Scan(&r.ID, &r.Level, &outcome, &duration, &r.Jumps, &r.Spawns, &ended); err != nil {
			return nil, fmt.Errorf("runs: scan: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Duration = time.Duration(duration) * time.Millisecond
		r.EndedAt = time.UnixMilli(ended)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runs: rows: %w", err)
	}
	return out, nil
}

// Count returns how many runs ended with outcome on level.
func (s *Store) Count(level string, outcome Outcome) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE level = ? AND outcome = ?`, level, string(outcome)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("runs: count %s: %w", level, err)
	}
	return n, nil
}
