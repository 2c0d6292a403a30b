// Package sqlitestore is the SQLite-backed persistence layer for todos.
//
// A single table, TODO(id, title, date), holds every record. Writes are
// independently atomic; after each committed write the store reloads the
// table and publishes the full list to AllTodos subscribers, in commit order.
//
// No locking beyond what SQLite and the write mutex provide; concurrent
// writers to the same id race and the last commit wins.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/roomtodo/internal/live"
	"github.com/idilsaglam/roomtodo/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is stored in PRAGMA user_version.
const SchemaVersion = 1

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store owns the database handle and the live todo list.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex // serializes write+publish so snapshots follow commit order
	todos *live.List[model.Todo]
	stale bool // last refresh failed; the live list lags the table
}

// Open creates or opens the database at path, applies the schema and
// publishes the current table contents.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// one connection: SQLite has a single writer, and :memory: databases
	// are per-connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, path == MemoryPath); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, todos: live.New[model.Todo]()}
	if err := s.refresh(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the live list and the database.
func (s *Store) Close() error {
	s.todos.Close()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB, memory bool) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, SchemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
