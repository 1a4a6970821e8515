package kafka

import (
	"context"
	"log"
	"sync"
)

// Job is one unit of handler work, typically handle-then-commit.
type Job func(ctx context.Context) error

// Pool runs jobs on a fixed set of workers. Handler invocations may run
// concurrently; nothing in the pipeline shares mutable state beyond the
// store clients, which are safe for concurrent use.
type Pool struct {
	jobs   chan Job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPool(ctx context.Context, workers int, queueSize int) *Pool {
	pCtx, cancel := context.WithCancel(ctx)
	p := &Pool{
		jobs:   make(chan Job, queueSize),
		ctx:    pCtx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for job := range p.jobs {
				if err := job(p.ctx); err != nil {
					log.Printf("worker %d: job failed: %v", id, err)
				}
			}
		}(i)
	}
	return p
}

func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Shutdown stops accepting jobs and waits for in-flight ones to finish.
func (p *Pool) Shutdown() {
	close(p.jobs)
	p.wg.Wait()
	p.cancel()
}
