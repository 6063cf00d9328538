package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	kind        TEXT    NOT NULL,
	done        INTEGER NOT NULL DEFAULT 0,
	description TEXT    NOT NULL,
	at          TEXT    NOT NULL DEFAULT ''
);
`

// SQLite implements Store on a SQLite database. The list order is kept in
// the position column.
type SQLite struct {
	conn *sql.DB
	loc  *time.Location
}

// OpenSQLite opens (or creates) the database at dsn and applies the schema.
func OpenSQLite(dsn string, loc *time.Location) (*SQLite, error) {
	if loc == nil {
		loc = time.Local
	}
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLite{conn: conn, loc: loc}, nil
}

// LoadAll returns every row ordered by position.
func (s *SQLite) LoadAll() ([]models.Task, error) {
	rows, err := s.conn.Query(`SELECT kind, done, description, at FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("storage: load: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var (
			kind, desc, at string
			done           bool
		)
		if err := rows.Scan(&kind, &done, &desc, &at); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		t := models.Task{Kind: models.Kind(kind), Done: done, Description: desc}
		if at != "" {
			when, err := time.ParseInLocation(timeLayout, at, s.loc)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d timestamp: %w: %w", len(out)+1, apperr.ErrCorruptRecord, err)
			}
			t.When = when
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("storage: row %d: %w: %w", len(out)+1, apperr.ErrCorruptRecord, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveAll replaces all rows within one transaction.
func (s *SQLite) SaveAll(tasks []models.Task) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("storage: clear: %w", err)
	}
	if len(tasks) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO tasks (position, kind, done, description, at) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("storage: prepare insert: %w", err)
		}
		defer stmt.Close()
		for i, t := range tasks {
			at := ""
			if t.Kind.HasTime() {
				at = t.When.In(s.loc).Format(timeLayout)
			}
			if _, err := stmt.Exec(i+1, string(t.Kind), t.Done, t.Description, at); err != nil {
				return fmt.Errorf("storage: insert task %d: %w", i+1, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
