// Package live holds a push-based list that re-delivers the full snapshot
// to every subscriber whenever it changes.
package live

import (
	"context"
	"sync"
)

// List broadcasts snapshots of []T. A subscriber gets the latest snapshot
// right away (if one was published) and every later one, but a slow
// subscriber only ever holds the most recent snapshot: older pending ones
// are replaced, so Publish never blocks.
type List[T any] struct {
	mu     sync.Mutex
	latest []T
	has    bool
	closed bool
	done   chan struct{}
	subs   map[*subscriber[T]]struct{}
}

type subscriber[T any] struct {
	ch chan []T
}

// New returns an empty list with no snapshot yet.
func New[T any]() *List[T] {
	return &List[T]{
		done: make(chan struct{}),
		subs: make(map[*subscriber[T]]struct{}),
	}
}

// Publish stores a copy of snapshot as the current value and delivers a
// separate copy to each subscriber, so readers may modify what they receive.
func (l *List[T]) Publish(snapshot []T) {
	cp := clone(snapshot)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.latest, l.has = cp, true
	for s := range l.subs {
		s.offer(clone(cp))
	}
}

// Current returns the latest snapshot; ok is false before the first Publish.
func (l *List[T]) Current() (snapshot []T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.has {
		return nil, false
	}
	return clone(l.latest), true
}

// Subscribe returns a channel of snapshots. It is closed when ctx is done
// or the list is closed.
func (l *List[T]) Subscribe(ctx context.Context) <-chan []T {
	s := &subscriber[T]{ch: make(chan []T, 1)}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		close(s.ch)
		return s.ch
	}
	if l.has {
		s.offer(clone(l.latest))
	}
	l.subs[s] = struct{}{}
	l.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-l.done:
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subs[s]; ok {
			delete(l.subs, s)
			close(s.ch)
		}
	}()
	return s.ch
}

// Close closes all subscriber channels. Later publishes are dropped.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
	for s := range l.subs {
		delete(l.subs, s)
		close(s.ch)
	}
}

// offer replaces whatever the subscriber has not read yet. Callers hold l.mu.
func (s *subscriber[T]) offer(snapshot []T) {
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snapshot
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
