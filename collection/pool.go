package collection

import (
	"sync"

	"github.com/kbukum/collectionkit/errors"
)

// Pool is a Launcher backed by a fixed number of workers that can be shared
// by many orchestration calls, capping their combined concurrency. Queued
// tasks start highest priority first and in launch order within a priority.
//
// Operations running on a Pool must not block on another call that uses the
// same Pool once every worker may be busy; the inner tasks would never start.
type Pool struct {
	mu      sync.Mutex
	ready   *sync.Cond
	queues  [PriorityUserInitiated + 1][]func()
	queued  int
	workers int
	closed  bool
	wg      sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, errors.InvalidArgument("workers", "must be at least 1").WithDetail("value", workers)
	}
	p := &Pool{workers: workers}
	p.ready = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for range workers {
		go p.work()
	}
	return p, nil
}

// Launch queues task at priority pr. Priorities outside the named range are
// clamped to the nearest one. After Close, tasks get their own goroutine so
// that no accepted task is lost.
func (p *Pool) Launch(pr Priority, task func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		go task()
		return
	}
	i := min(max(int(pr), 0), len(p.queues)-1)
	p.queues[i] = append(p.queues[i], task)
	p.queued++
	p.mu.Unlock()
	p.ready.Signal()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for p.queued == 0 && !p.closed {
			p.ready.Wait()
		}
		if p.queued == 0 {
			p.mu.Unlock()
			return
		}
		task := p.next()
		p.mu.Unlock()

		task()
	}
}

// next pops the oldest task of the highest non-empty priority. Callers hold mu.
func (p *Pool) next() func() {
	for i := len(p.queues) - 1; i >= 0; i-- {
		if q := p.queues[i]; len(q) > 0 {
			task := q[0]
			q[0] = nil
			p.queues[i] = q[1:]
			p.queued--
			return task
		}
	}
	return nil
}

// Queued returns the number of tasks waiting for a worker.
func (p *Pool) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queued
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Close stops accepting queued work, runs what is already queued and waits
// for the workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.ready.Broadcast()
	p.wg.Wait()
}
