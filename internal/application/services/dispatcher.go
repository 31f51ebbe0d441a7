package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrQueueFull is returned when a job is submitted while every queue slot is taken
	ErrQueueFull = errors.New("generation queue is full")

	// ErrDispatcherStopped is returned for submissions after Stop
	ErrDispatcherStopped = errors.New("dispatcher stopped")
)

// Job is a unit of background work
type Job func()

// JobSubmitter accepts background jobs without blocking the caller
type JobSubmitter interface {
	Submit(job Job) error
}

// Dispatcher runs jobs on a fixed number of worker goroutines fed by a bounded queue
type Dispatcher struct {
	jobs    chan Job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher starts workers goroutines draining a queue of queueSize jobs
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	d := &Dispatcher{jobs: make(chan Job, queueSize)}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker(i)
	}
	return d
}

var _ JobSubmitter = (*Dispatcher)(nil)

// Submit enqueues job. It never blocks: a full queue is reported as ErrQueueFull.
func (d *Dispatcher) Submit(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new jobs and waits until queued and in-flight jobs have finished or ctx is done
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(id, job)
	}
}

func (d *Dispatcher) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", id).Interface("panic", r).Msg("background job panicked")
		}
	}()
	job()
}
