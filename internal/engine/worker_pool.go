package engine

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job is a unit of work for the pool.
type Job interface {
	Execute(ctx context.Context) error
}

// WorkerPool runs pairwise comparisons across available cores.
type WorkerPool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWorkerPool creates a pool sized from the CPU count, keeping a
// quarter of the cores free for the rest of the process.
func NewWorkerPool(ctx context.Context) *WorkerPool {
	totalCPU := runtime.NumCPU()
	size := max(1, totalCPU-max(1, totalCPU/4))
	log.Info().
		Int("totalCPU", totalCPU).
		Int("workers", size).
		Msg("Comparison worker pool initialized")

	poolCtx, cancel := context.WithCancel(ctx)
	pool := &WorkerPool{
		workers:  size,
		jobQueue: make(chan Job, size*2),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobQueue:
			if err := job.Execute(p.ctx); err != nil {
				log.Error().Err(err).Msg("Comparison job failed")
			}
		}
	}
}

// Submit queues a job, failing only when the pool is shut down.
func (p *WorkerPool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// Close stops the pool and waits for in-flight jobs. The queue is
// never closed; workers exit through the context so a late Submit
// cannot panic.
func (p *WorkerPool) Close() {
	p.cancel()
	p.wg.Wait()
}

// Size returns the worker count.
func (p *WorkerPool) Size() int {
	return p.workers
}
