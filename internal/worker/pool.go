// Package worker runs fire-and-forget jobs off the caller's goroutine.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// ErrClosed is logged for jobs submitted after Close.
var ErrClosed = errors.New("worker pool closed")

// Job is one unit of background work.
type Job func(ctx context.Context) error

// Pool runs at most size jobs at once. Submit never blocks; jobs wait for a
// free slot on their own goroutine. There are no retries and no timeouts:
// a dispatched job runs to completion or failure, and failures are logged.
type Pool struct {
	sem      *semaphore.Weighted
	log      logrus.FieldLogger
	failures atomic.Int64

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New returns a pool with size slots. size < 1 is treated as 1.
func New(size int, log logrus.FieldLogger) *Pool {
	if size < 1 {
		size = 1
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), log: log}
}

// Submit schedules job and returns immediately.
func (p *Pool) Submit(name string, job Job) {
	entry := p.log.WithFields(logrus.Fields{"job": name, "job_id": uuid.NewString()})

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.failures.Add(1)
		entry.WithError(ErrClosed).Error("job dropped")
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(entry, job)
}

func (p *Pool) run(entry *logrus.Entry, job Job) {
	defer p.wg.Done()

	ctx := context.Background()
	// Acquire only fails on a done context; Background never is.
	_ = p.sem.Acquire(ctx, 1)
	defer p.sem.Release(1)

	start := time.Now()
	if err := job(ctx); err != nil {
		p.failures.Add(1)
		entry.WithError(err).Error("job failed")
		return
	}
	entry.WithField("elapsed", time.Since(start).String()).Debug("job done")
}

// Failures counts jobs that failed or were dropped so far.
func (p *Pool) Failures() int64 {
	return p.failures.Load()
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close stops accepting jobs and waits for the ones in flight.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}
