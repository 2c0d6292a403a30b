package sqlitestore

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrConstraint is returned when a write violates a table constraint,
// in practice a primary-key collision on AddTodo with an explicit id.
var ErrConstraint = errors.New("constraint violation")

// classify wraps driver constraint failures with ErrConstraint and keeps
// the driver error in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
