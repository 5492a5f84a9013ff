// Package worker replays move lists on a fixed set of goroutines. Each record
// is replayed in a game of its own; workers share nothing but the channels.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// WorkItem is one move list waiting to be replayed.
type WorkItem struct {
	Record *parser.GameRecord
	Index  int // position in the input
}

// ProcessResult is the outcome of replaying one move list.
type ProcessResult struct {
	Record       *parser.GameRecord
	Index        int
	Analysis     *processing.GameAnalysis // nil when the game could not be set up
	ShouldOutput bool
	OutputToDup  bool
	Error        error
}

// ProcessFunc replays a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

const (
	defaultWorkers = 1
	backlogPerWork = 2
)

// Pool runs a ProcessFunc over submitted items. Once its context is done, or
// Stop is called, queued items are dropped unreplayed and Submit refuses new ones.
type Pool struct {
	workers int
	backlog int
	fn      ProcessFunc

	ctx    context.Context
	cancel context.CancelFunc

	jobs     chan WorkItem
	results  chan ProcessResult
	wg       sync.WaitGroup
	replayed atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of replay goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets how many items may wait in the queue. Values below 1
// are ignored; the default is twice the worker count.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.backlog = size
		}
	}
}

// NewPool returns a pool bound to ctx. Call Start before submitting.
func NewPool(ctx context.Context, fn ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{workers: defaultWorkers, fn: fn}
	for _, opt := range opts {
		opt(p)
	}
	if p.backlog == 0 {
		p.backlog = backlogPerWork * p.workers
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.jobs = make(chan WorkItem, p.backlog)
	p.results = make(chan ProcessResult, p.backlog)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for item := range p.jobs {
		if p.ctx.Err() != nil {
			continue
		}
		p.results <- p.fn(item)
		p.replayed.Add(1)
	}
}

// Submit queues item. It blocks while the queue is full and returns false,
// without queuing, once the pool has been stopped.
func (p *Pool) Submit(item WorkItem) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- item:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Stop abandons the remaining work. Items already running finish.
func (p *Pool) Stop() {
	p.cancel()
}

// Stopped reports whether the pool's context is done.
func (p *Pool) Stopped() bool {
	return p.ctx.Err() != nil
}

// Close ends submission, waits for the workers and closes Results. The
// caller must keep reading Results until it is closed.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results delivers results in completion order.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// Workers returns the number of replay goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Replayed returns how many items have been replayed so far.
func (p *Pool) Replayed() int {
	return int(p.replayed.Load())
}
