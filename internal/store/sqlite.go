package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"todocli/internal/logging"
	"todocli/internal/task"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	idx         INTEGER NOT NULL,
	title       TEXT NOT NULL,
	is_complete INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	position    INTEGER NOT NULL
);
`

// SQLite stores the collection in a single SQLite table.
// Save replaces every row in one transaction.
type SQLite struct {
	path string
	db   *sql.DB
}

// NewSQLite creates a SQLite store at path. The database is opened lazily.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Path implements Store.
func (s *SQLite) Path() string { return s.path }

// Close implements Store.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// open opens the database and ensures the table exists.
// With create unset, a missing file is reported instead of created.
func (s *SQLite) open(ctx context.Context, create bool) error {
	if s.db != nil {
		return nil
	}

	if create {
		if err := ensureDir(s.path); err != nil {
			return err
		}
	} else if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("read store: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return fmt.Errorf("open store: %w", err)
	}
	s.db = db
	return nil
}

// Init implements Store.
func (s *SQLite) Init(ctx context.Context) (bool, error) {
	ok, err := exists(s.path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if err := s.open(ctx, true); err != nil {
		return false, err
	}
	return !ok, nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context) ([]task.Task, error) {
	if err := s.open(ctx, false); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, idx, title, is_complete, created_at
	FROM tasks
	ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var (
			id, createdAt string
			t             task.Task
		)
		if err := rows.Scan(&id, &t.Index, &t.Title, &t.Complete, &createdAt); err != nil {
			return nil, &DecodeError{Path: s.path, Err: err}
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, &DecodeError{Path: s.path, Err: fmt.Errorf("task %d: id: %w", t.Index, err)}
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, &DecodeError{Path: s.path, Err: fmt.Errorf("task %d: created_at: %w", t.Index, err)}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	logging.From(ctx).Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, tasks []task.Task) error {
	if err := s.open(ctx, true); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO tasks (id, idx, title, is_complete, created_at, position)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		createdAt := t.CreatedAt.UTC().Format(time.RFC3339Nano)
		if _, err := stmt.ExecContext(ctx, t.ID.String(), t.Index, t.Title, t.Complete, createdAt, i); err != nil {
			return fmt.Errorf("write store: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	logging.From(ctx).Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}
