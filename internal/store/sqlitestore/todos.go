package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/idilsaglam/roomtodo/internal/live"
	"github.com/idilsaglam/roomtodo/internal/model"
)

const (
	selectTodos  = `SELECT id, title, date FROM TODO ORDER BY id ASC`
	selectTodo   = `SELECT id, title, date FROM TODO WHERE id = ?`
	insertNew    = `INSERT INTO TODO (title, date) VALUES (?, ?)`
	insertWithID = `INSERT INTO TODO (id, title, date) VALUES (?, ?, ?)`
	upsertByID   = `INSERT INTO TODO (id, title, date) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, date = excluded.date`
	deleteByID = `DELETE FROM TODO WHERE id = ?`
)

// AllTodos is the live read channel: the full list in id order, re-published
// after every committed write.
func (s *Store) AllTodos() *live.List[model.Todo] {
	return s.todos
}

// ListTodos reads the table once, in id order.
func (s *Store) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, selectTodos)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Date); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetTodo looks up one todo; ok is false if the id is absent.
func (s *Store) GetTodo(ctx context.Context, id int64) (todo model.Todo, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, selectTodo, id).Scan(&todo.ID, &todo.Title, &todo.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, true, nil
}

// AddTodo inserts todo. A zero ID lets SQLite assign one; an explicit ID
// that already exists fails with ErrConstraint.
func (s *Store) AddTodo(ctx context.Context, todo model.Todo) error {
	return s.write(ctx, "add todo", func() (sql.Result, error) {
		if !todo.Persisted() {
			return s.db.ExecContext(ctx, insertNew, todo.Title, todo.Date)
		}
		return s.db.ExecContext(ctx, insertWithID, todo.ID, todo.Title, todo.Date)
	})
}

// UpsertTodo replaces the row with todo.ID, or inserts it when absent.
// A zero ID inserts a new row with a fresh id.
func (s *Store) UpsertTodo(ctx context.Context, todo model.Todo) error {
	return s.write(ctx, "upsert todo", func() (sql.Result, error) {
		if !todo.Persisted() {
			return s.db.ExecContext(ctx, insertNew, todo.Title, todo.Date)
		}
		return s.db.ExecContext(ctx, upsertByID, todo.ID, todo.Title, todo.Date)
	})
}

// DeleteTodo removes the row with id. A missing id is not an error.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	return s.write(ctx, "delete todo", func() (sql.Result, error) {
		return s.db.ExecContext(ctx, deleteByID, id)
	})
}

func (s *Store) write(ctx context.Context, op string, exec func() (sql.Result, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := exec()
	if err != nil {
		return classify(op, err)
	}
	// nothing committed, nothing to re-publish unless a previous refresh failed
	if n, err := res.RowsAffected(); err == nil && n == 0 && !s.stale {
		return nil
	}
	return s.refresh(ctx)
}

// refresh publishes the current table. Callers other than Open hold s.mu.
//
// A failed refresh after a committed write leaves the row in the table but
// not in the live list; the error goes to the caller and the store is marked
// stale so the next write, even one that changes nothing, publishes again.
func (s *Store) refresh(ctx context.Context) error {
	todos, err := s.ListTodos(ctx)
	if err != nil {
		s.stale = true
		return fmt.Errorf("refresh live list: %w", err)
	}
	s.stale = false
	s.todos.Publish(todos)
	return nil
}
