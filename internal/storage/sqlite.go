// Package storage records simulation traces in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database holding recorded runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation.
type Run struct {
	ID         int64
	Scene      string
	DT         float64
	Iterations int
	Steps      int // number of recorded steps
	CreatedAt  time.Time
}

// BodyState is the state of one body after a step.
type BodyState struct {
	Step            int
	Body            string
	X, Y            float64
	Angle           float64
	VX, VY          float64
	AngularVelocity float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
			scene TEXT NOT NULL,
			dt REAL NOT NULL,
			iterations INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS body_states (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			body TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			angle REAL NOT NULL,
			vx REAL NOT NULL,
			vy REAL NOT NULL,
			angular_velocity REAL NOT NULL,
			PRIMARY KEY (run_id, step, body)
		);
		CREATE INDEX IF NOT EXISTS idx_body_states_track ON body_states(run_id, body, step);
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

// BeginRun records a new run and returns its ID.
func (s *Store) BeginRun(scene string, dt float64, iterations int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (scene, dt, iterations) VALUES (?, ?, ?)",
		scene, dt, iterations,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordStep stores the body states of one step in a single transaction.
func (s *Store) RecordStep(runID int64, step int, states []BodyState) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(
		`INSERT INTO body_states (run_id, step, body, x, y, angle, vx, vy, angular_velocity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range states {
		if _, err = stmt.Exec(runID, step, st.Body, st.X, st.Y, st.Angle, st.VX, st.VY, st.AngularVelocity); err != nil {
			return fmt.Errorf("storage: cannot record step %d of run %d: %w", step, runID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit step %d: %w", step, err)
	}
	return nil
}

// Runs returns the recorded runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.scene, r.dt, r.iterations, r.created_at,
		        (SELECT COUNT(DISTINCT step) FROM body_states b WHERE b.run_id = r.id)
		 FROM runs r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Scene, &r.DT, &r.Iterations, &createdAt, &r.Steps); err != nil {
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

// Track returns the recorded states of one body in step order.
func (s *Store) Track(runID int64, body string) ([]BodyState, error) {
	rows, err := s.db.Query(
		`SELECT step, body, x, y, angle, vx, vy, angular_velocity
		 FROM body_states
		 WHERE run_id = ? AND body = ?
		 ORDER BY step`,
		runID, body,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query track: %w", err)
	}
	defer rows.Close()

	var states []BodyState
	for rows.Next() {
		var st BodyState
		if err := rows.Scan(&st.Step, &st.Body, &st.X, &st.Y, &st.Angle, &st.VX, &st.VY, &st.AngularVelocity); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		states = append(states, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return states, nil
}

// DeleteRun removes a run and its recorded states.
func (s *Store) DeleteRun(runID int64) error {
	if _, err := s.db.Exec("DELETE FROM body_states WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete states of run %d: %w", runID, err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run %d: %w", runID, err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
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
