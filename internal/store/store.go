// Package store persists iteration records to a SQLite database via
// modernc.org/sqlite's pure-Go driver, so a campaign's history survives
// the process and can be queried later (spec.md §6, "--db", "veridiff
// history"). The teacher's go.mod already names modernc.org/sqlite; this
// is the first concrete exerciser of it in the module.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/veridiff/internal/orchestrator"
)

// Store wraps a SQLite-backed results log.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS iterations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	module_name TEXT NOT NULL,
	oracle INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tool_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	iteration_id INTEGER NOT NULL REFERENCES iterations(id),
	tool_name TEXT NOT NULL,
	outcome TEXT NOT NULL,
	value INTEGER NOT NULL,
	log TEXT NOT NULL
);
`

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordIteration appends one iteration and its per-tool results.
func (s *Store) RecordIteration(sessionID string, it orchestrator.Iteration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO iterations (session_id, seq, module_name, oracle, outcome, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, it.Seq, it.Design.ModuleName, it.Design.Oracle, it.Outcome.String(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting iteration: %w", err)
	}
	iterID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading iteration id: %w", err)
	}

	for _, to := range it.Tools {
		if _, err := tx.Exec(
			`INSERT INTO tool_results (iteration_id, tool_name, outcome, value, log) VALUES (?, ?, ?, ?, ?)`,
			iterID, to.ToolName, to.Result.Outcome.String(), to.Result.Value, to.Result.Log,
		); err != nil {
			return fmt.Errorf("inserting tool result for %s: %w", to.ToolName, err)
		}
	}

	return tx.Commit()
}

// Summary is one recorded iteration as returned by History.
type Summary struct {
	SessionID string
	Seq       int
	Module    string
	Outcome   string
	CreatedAt string
}

// History returns every recorded iteration for sessionID, most recent
// first, for the `veridiff history` subcommand (spec.md §6).
func (s *Store) History(sessionID string) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT session_id, seq, module_name, outcome, created_at FROM iterations WHERE session_id = ? ORDER BY seq DESC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.SessionID, &sm.Seq, &sm.Module, &sm.Outcome, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
