// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc schedules a job.
	WorkerFunc func(func())
	// WaitFunc blocks until scheduled jobs finished. With done set, no more
	// jobs may be scheduled afterwards.
	WaitFunc func(done bool)
)

type Pool struct {
	workers int
	wg      sync.WaitGroup
	pending sync.WaitGroup
	jobs    chan func()
	close   func()
}

// Start launches numWorkers goroutines, or GOMAXPROCS when numWorkers < 1.
// A single worker runs jobs inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.jobs {
				f()
				p.pending.Done()
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.jobs) })

	return p
}

// Workers returns the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Do runs f on a worker, blocking while every worker is busy and the queue
// is full.
func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.pending.Add(1)
	p.jobs <- f
}

// Wait blocks until every job handed to Do returned. With done set the
// workers exit and the pool cannot be reused.
func (p *Pool) Wait(done bool) {
	p.pending.Wait()
	if done {
		p.close()
		p.wg.Wait()
	}
}

// Funcs returns Do and Wait as the function types commands bind to.
func (p *Pool) Funcs() (WorkerFunc, WaitFunc) {
	return p.Do, p.Wait
}
