package model

import "time"

// DateLayout is the stamp written into Todo.Date on every write,
// e.g. "2026-10-15 | 09:41:07 PM".
const DateLayout = "2006-01-02 | 03:04:05 PM"

// Todo is the domain model for a todo entry.
// ID is assigned by the store; zero means "not yet persisted".
type Todo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Persisted reports whether the store has assigned an id.
func (t Todo) Persisted() bool { return t.ID != 0 }

// StampDate formats t with DateLayout.
func StampDate(t time.Time) string { return t.Format(DateLayout) }
