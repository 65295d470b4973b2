package kit

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrPoolFull   = errors.New("task queue is full")
	ErrPoolClosed = errors.New("task pool is closed")
)

const (
	MinPoolWorkers   = 2
	MaxPoolWorkers   = 8
	DefaultQueueSize = 100
)

type Task func()

type PoolConfig struct {
	Name      string
	Workers   int
	QueueSize int
	Log       *zap.Logger
	Metrics   *PoolMetrics
}

// WorkerPool runs tasks on a fixed set of goroutines fed by a bounded queue.
// Submit never blocks: when the queue is at capacity the task is refused
// with ErrPoolFull. Accepted tasks always run to completion.
type WorkerPool struct {
	name    string
	workers int
	log     *zap.Logger
	metrics *PoolMetrics

	mu     sync.RWMutex
	closed bool
	tasks  chan Task
	wg     sync.WaitGroup
}

func NewWorkerPool(cfg PoolConfig) *WorkerPool {
	workers := min(max(cfg.Workers, MinPoolWorkers), MaxPoolWorkers)

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	name := cfg.Name
	if name == "" {
		name = "default"
	}

	p := &WorkerPool{
		name:    name,
		workers: workers,
		log:     log.With(zap.String("pool", name)),
		metrics: cfg.Metrics,
		tasks:   make(chan Task, queueSize),
	}

	p.wg.Add(workers)
	for range workers {
		go p.run()
	}
	return p
}

func (p *WorkerPool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.metrics.rejected(p.name, "closed")
		return ErrPoolClosed
	}

	select {
	case p.tasks <- t:
		p.metrics.submitted(p.name, len(p.tasks))
		return nil
	default:
		p.metrics.rejected(p.name, "full")
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks and waits for the queue to drain.
// Queued tasks are not cancelled; ctx only bounds how long the caller waits.
func (p *WorkerPool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *WorkerPool) Closed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

func (p *WorkerPool) Workers() int  { return p.workers }
func (p *WorkerPool) Capacity() int { return cap(p.tasks) }
func (p *WorkerPool) Pending() int  { return len(p.tasks) }

func (p *WorkerPool) run() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.metrics.dequeued(p.name, len(p.tasks))
		p.exec(t)
	}
}

func (p *WorkerPool) exec(t Task) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("task panicked", zap.Any("panic", rec))
			p.metrics.completed(p.name, "panic")
		}
	}()

	t()
	p.metrics.completed(p.name, "ok")
}
