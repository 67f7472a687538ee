// Package storage provides SQLite-based persistence for finished maze runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run outcomes as stored in the outcome column.
const (
	OutcomeFound  = "found"
	OutcomeNoPath = "no_path"
)

var (
	// ErrInvalidRun is returned by SaveRun for records that cannot be stored.
	ErrInvalidRun = errors.New("storage: invalid run")
	// ErrAmbiguousID is returned by RunByID when a prefix matches several runs.
	ErrAmbiguousID = errors.New("storage: ambiguous run id")
)

// EnvDB names the environment variable that overrides the database path.
const EnvDB = "MAZETRACE_DB"

// DefaultPath is where the run history lives unless overridden.
const DefaultPath = "~/.mazetrace/runs.db"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished search.
type Run struct {
	ID        string // uuid, assigned by SaveRun when empty
	Layout    string
	Seed      int64
	Width     int
	Height    int
	Density   float64
	Outcome   string // OutcomeFound or OutcomeNoPath
	Expanded  int
	PathLen   int // 0 when no path was found
	Ticks     int
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			id TEXT PRIMARY KEY,
			layout TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			density REAL NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL CHECK (outcome IN ('found', 'no_path')),
			expanded INTEGER NOT NULL DEFAULT 0,
			path_len INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.Outcome != OutcomeFound && r.Outcome != OutcomeNoPath {
		return "", fmt.Errorf("%w: outcome %q", ErrInvalidRun, r.Outcome)
	}
	if r.Layout == "" {
		return "", fmt.Errorf("%w: empty layout", ErrInvalidRun)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("%w: id %q: %v", ErrInvalidRun, r.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, layout, seed, width, height, density, outcome, expanded, path_len, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Layout, r.Seed, r.Width, r.Height, r.Density,
		r.Outcome, r.Expanded, r.PathLen, r.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, layout, seed, width, height, density, outcome, expanded, path_len, ticks, created_at`

// RecentRuns retrieves the most recent runs across all layouts.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsByLayout retrieves the most recent runs of one layout.
func (s *Store) RunsByLayout(layout string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves one run by its ID or by a prefix that only one ID
// starts with. Returns nil if nothing matches.
func (s *Store) RunByID(id string) (*Run, error) {
	if id == "" {
		return nil, nil
	}
	pattern := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(id) + "%"
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`, pattern)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	switch {
	case err != nil || len(runs) == 0:
		return nil, err
	case len(runs) > 1:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Layout, &r.Seed, &r.Width, &r.Height, &r.Density,
			&r.Outcome, &r.Expanded, &r.PathLen, &r.Ticks, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes all runs of the given layout, or every run when layout
// is empty. Returns the number of deleted runs.
func (s *Store) ClearRuns(layout string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if layout == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE layout = ?", layout)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats contains aggregated statistics for a layout.
type Stats struct {
	Layout      string
	Runs        int
	Found       int
	NoPath      int
	AvgExpanded float64
	BestPath    int // shortest path among found runs, 0 if none
	LastRun     time.Time
}

// Stats retrieves aggregated statistics for one layout, or for all runs
// when layout is empty.
func (s *Store) Stats(layout string) (*Stats, error) {
	stats := &Stats{Layout: layout}

	where, args := "", []any{}
	if layout != "" {
		where, args = "WHERE layout = ?", []any{layout}
	}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'found' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(expanded), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'found' THEN path_len END), 0),
		        MAX(created_at)
		 FROM runs `+where,
		args...,
	).Scan(&stats.Runs, &stats.Found, &stats.AvgExpanded, &stats.BestPath, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.NoPath = stats.Runs - stats.Found
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// AllStats retrieves statistics for every layout that has runs, keyed by layout.
func (s *Store) AllStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(
		`SELECT layout, COUNT(*),
		        SUM(CASE WHEN outcome = 'found' THEN 1 ELSE 0 END),
		        AVG(expanded),
		        COALESCE(MIN(CASE WHEN outcome = 'found' THEN path_len END), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY layout`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		var lastRun any
		if err := rows.Scan(&st.Layout, &st.Runs, &st.Found, &st.AvgExpanded, &st.BestPath, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.NoPath = st.Runs - st.Found
		st.LastRun = parseTime(lastRun)
		stats[st.Layout] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
