// Package parallel provides the worker pool that bitmap traversals are
// spread across.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines pulling jobs from a shared queue.
//
// Callers of ExecuteAll and Range help drain the queue while they wait, so
// a job may itself call ExecuteAll without deadlocking the pool, and work
// submitted after Close still completes on the calling goroutine.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// jobs is the shared work queue.
	jobs chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// Default returns the process-wide pool, sized to GOMAXPROCS at first use.
// It is never closed.
var Default = sync.OnceValue(func() *WorkerPool {
	return NewWorkerPool(0)
})

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer 4x workers so submitters rarely fall back to running inline.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		jobs:    make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			job()
		case <-p.done:
			p.help()
			return
		}
	}
}

// help runs queued jobs on the calling goroutine until the queue is empty.
func (p *WorkerPool) help() {
	for {
		select {
		case job := <-p.jobs:
			job()
		default:
			return
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool has not been closed.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// ExecuteAll runs every job and returns once all of them have finished.
// Nil jobs are skipped. When the queue is full, or the pool is closed, jobs
// run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	var wg sync.WaitGroup
	for _, job := range work {
		if job == nil {
			continue
		}
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			job()
		}
		if !p.enqueue(wrapped) {
			wrapped()
		}
	}
	p.help()
	wg.Wait()
}

func (p *WorkerPool) enqueue(job func()) bool {
	if !p.running.Load() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Range splits [0, n) into at most bands contiguous, near-equal spans and
// calls fn for each one in parallel. Band indexes ascend with start.
// Range returns once every call has returned.
func (p *WorkerPool) Range(n, bands int, fn func(band, start, end int)) {
	if n <= 0 {
		return
	}
	bands = min(max(bands, 1), n)
	if bands == 1 {
		fn(0, 0, n)
		return
	}

	size, extra := n/bands, n%bands
	work := make([]func(), bands)
	start := 0
	for band := range bands {
		end := start + size
		if band < extra {
			end++
		}
		s := start
		work[band] = func() { fn(band, s, end) }
		start = end
	}
	p.ExecuteAll(work)
}

// Close stops the workers after the queue drains. Close is idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
