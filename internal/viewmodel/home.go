// Package viewmodel mediates screen intents to the todo store.
package viewmodel

import (
	"context"
	"time"

	"github.com/idilsaglam/roomtodo/internal/live"
	"github.com/idilsaglam/roomtodo/internal/model"
	"github.com/idilsaglam/roomtodo/internal/worker"
)

// Repository is the persistence the home screen needs.
type Repository interface {
	AddTodo(ctx context.Context, todo model.Todo) error
	UpsertTodo(ctx context.Context, todo model.Todo) error
	DeleteTodo(ctx context.Context, id int64) error
	AllTodos() *live.List[model.Todo]
}

// Dispatcher runs jobs in the background. *worker.Pool satisfies it.
type Dispatcher interface {
	Submit(name string, job worker.Job)
}

// Option configures a Home.
type Option func(*Home)

// WithClock overrides time.Now for date stamps.
func WithClock(now func() time.Time) Option {
	return func(h *Home) { h.now = now }
}

// Home is the view-model behind the home screen. It holds no state of its
// own: the list is whatever the repository has committed.
type Home struct {
	repo     Repository
	dispatch Dispatcher
	now      func() time.Time
}

// New wires a Home to its repository and background dispatcher.
func New(repo Repository, dispatch Dispatcher, opts ...Option) *Home {
	h := &Home{repo: repo, dispatch: dispatch, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// TodoList is the repository's live list, passed through.
func (h *Home) TodoList() *live.List[model.Todo] {
	return h.repo.AllTodos()
}

// AddTodo stamps the current time and inserts a new todo in the background.
// The title is stored as given; callers trim it.
func (h *Home) AddTodo(title string) {
	todo := model.Todo{Title: title, Date: h.stamp()}
	h.dispatch.Submit("add todo", func(ctx context.Context) error {
		return h.repo.AddTodo(ctx, todo)
	})
}

// UpdateTodo re-stamps and upserts todo id with title in the background.
// An id that no longer exists is inserted again.
func (h *Home) UpdateTodo(id int64, title string) {
	todo := model.Todo{ID: id, Title: title, Date: h.stamp()}
	h.dispatch.Submit("update todo", func(ctx context.Context) error {
		return h.repo.UpsertTodo(ctx, todo)
	})
}

// DeleteTodo removes todo id in the background.
func (h *Home) DeleteTodo(id int64) {
	h.dispatch.Submit("delete todo", func(ctx context.Context) error {
		return h.repo.DeleteTodo(ctx, id)
	})
}

func (h *Home) stamp() string {
	return model.StampDate(h.now())
}
