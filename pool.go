package oneshot

import (
	"context"
	"errors"
	"math"
	"sync"

	"go.uber.org/atomic"

	"github.com/qubelabs/oneshot/internal/queue"
)

const (
	Unbounded        = math.MaxInt // Unbounded queue size
	DefaultQueueSize = Unbounded
)

var (
	// ErrQueueFull is returned when a non-blocking submission finds the task
	// queue full.
	ErrQueueFull = errors.New("oneshot: task queue is full")
	// ErrPoolStopped is returned for submissions after the pool stopped.
	ErrPoolStopped = errors.New("oneshot: pool stopped")
)

// pending is a queued task together with the hook that fails its future when
// the pool shuts down before the task can run.
type pending struct {
	run   func()
	abort func(error)
}

// Option configures a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	ctx           context.Context
	queueSize     int
	panicRecovery bool
}

// WithContext sets the parent context for the pool. Canceling it stops the
// pool; tasks still queued at that point fail with the cancellation cause.
func WithContext(ctx context.Context) Option {
	return func(c *poolConfig) { c.ctx = ctx }
}

// WithQueueSize bounds the task queue. A size of 0 disables queueing:
// submissions beyond the concurrency limit are rejected.
func WithQueueSize(size int) Option {
	return func(c *poolConfig) { c.queueSize = size }
}

// WithoutPanicRecovery disables panic recovery in tasks.
func WithoutPanicRecovery() Option {
	return func(c *poolConfig) { c.panicRecovery = false }
}

// Pool runs producer tasks on a bounded number of goroutines and hands back a
// Future for each submission. All futures of one pool share the pool's
// adapter for their raw results.
type Pool[R, V any] struct {
	mu             sync.Mutex
	ctx            context.Context
	cancel         context.CancelCauseFunc
	adapt          func(R) V
	panicRecovery  bool
	maxConcurrency int
	queueSize      int
	closed         atomic.Bool
	workerCount    atomic.Int64
	workerWG       sync.WaitGroup
	submitWaiters  chan struct{}
	tasks          *queue.Queue[pending]

	submitted  atomic.Uint64
	successful atomic.Uint64
	failed     atomic.Uint64
	dropped    atomic.Uint64
}

// NewPool creates a pool running at most maxConcurrency tasks at once
// (0 = unlimited). adapt converts each task's raw result into the
// consumer-facing type; use Identity when no adaptation is needed.
func NewPool[R, V any](maxConcurrency int, adapt func(R) V, options ...Option) *Pool[R, V] {
	if maxConcurrency < 0 {
		panic(errors.New("oneshot: maxConcurrency must be greater than or equal to 0"))
	}
	if maxConcurrency == 0 {
		maxConcurrency = math.MaxInt
	}
	if adapt == nil {
		panic(errors.New("oneshot: adapt must not be nil"))
	}

	cfg := poolConfig{
		ctx:           context.Background(),
		queueSize:     DefaultQueueSize,
		panicRecovery: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	p := &Pool[R, V]{
		adapt:          adapt,
		panicRecovery:  cfg.panicRecovery,
		maxConcurrency: maxConcurrency,
		queueSize:      cfg.queueSize,
		submitWaiters:  make(chan struct{}, 1), // buffer 1 to prevent deadlock
		tasks:          queue.New[pending](),
	}
	p.ctx, p.cancel = context.WithCancelCause(cfg.ctx)
	return p
}

func (p *Pool[R, V]) Context() context.Context { return p.ctx }
func (p *Pool[R, V]) Stopped() bool            { return p.closed.Load() || p.ctx.Err() != nil }
func (p *Pool[R, V]) QueueSize() int           { return p.queueSize }
func (p *Pool[R, V]) MaxConcurrency() int      { return p.maxConcurrency }
func (p *Pool[R, V]) RunningWorkers() int64    { return p.workerCount.Load() }
func (p *Pool[R, V]) SubmittedTasks() uint64   { return p.submitted.Load() }
func (p *Pool[R, V]) SuccessfulTasks() uint64  { return p.successful.Load() }
func (p *Pool[R, V]) FailedTasks() uint64      { return p.failed.Load() }
func (p *Pool[R, V]) DroppedTasks() uint64     { return p.dropped.Load() }
func (p *Pool[R, V]) CompletedTasks() uint64 {
	return p.successful.Load() + p.failed.Load()
}

func (p *Pool[R, V]) WaitingTasks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return uint64(p.tasks.Len())
}

// Submit submits a task, blocking while the queue is full, and returns a
// future for its result.
func (p *Pool[R, V]) Submit(task func() R) *Future[R, V] {
	f, _ := p.submit(plain(task), false)
	return f
}

// SubmitErr submits a task that can return an error.
func (p *Pool[R, V]) SubmitErr(task func() (R, error)) *Future[R, V] {
	f, _ := p.submit(task, false)
	return f
}

// TrySubmit attempts a non-blocking submission. Returns false if the queue is
// full or the pool is stopped; the returned future then fails with the
// rejection error.
func (p *Pool[R, V]) TrySubmit(task func() R) (*Future[R, V], bool) {
	return p.submit(plain(task), true)
}

// TrySubmitErr attempts a non-blocking submission of an error-returning task.
func (p *Pool[R, V]) TrySubmitErr(task func() (R, error)) (*Future[R, V], bool) {
	return p.submit(task, true)
}

func (p *Pool[R, V]) submit(task func() (R, error), nonBlocking bool) (*Future[R, V], bool) {
	promise, future := NewPromise[R, V](p.adapt)
	if p.Stopped() {
		promise.Fail(ErrPoolStopped)
		return future, false
	}
	p.submitted.Add(1)

	entry := pending{
		run: func() {
			value, err := invoke(task, p.panicRecovery)
			if err != nil {
				p.failed.Add(1)
				promise.Fail(err)
			} else {
				p.successful.Add(1)
				promise.Complete(value)
			}
		},
		abort: func(err error) {
			p.dropped.Add(1)
			promise.Fail(err)
		},
	}

	var err error
	if nonBlocking {
		err = p.trySubmit(entry)
	} else {
		err = p.blockingSubmit(entry)
	}
	if err != nil {
		entry.abort(err)
		return future, false
	}
	return future, true
}

func (p *Pool[R, V]) blockingSubmit(entry pending) error {
	for {
		if err := p.trySubmit(entry); err != ErrQueueFull {
			return err
		}
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case <-p.submitWaiters:
			if p.ctx.Err() != nil {
				return p.ctx.Err()
			}
		}
	}
}

func (p *Pool[R, V]) trySubmit(entry pending) error {
	p.mu.Lock()
	if p.Stopped() {
		p.mu.Unlock()
		return ErrPoolStopped
	}

	queueEnabled := p.queueSize > 0
	queued := p.tasks.Len()

	if queueEnabled && queued >= p.queueSize {
		p.mu.Unlock()
		return ErrQueueFull
	}

	if int(p.workerCount.Load()) >= p.maxConcurrency {
		if !queueEnabled {
			p.mu.Unlock()
			return ErrQueueFull
		}
		p.tasks.Push(entry)
		p.mu.Unlock()
		return nil
	}

	p.workerCount.Add(1)
	p.workerWG.Add(1)

	if queueEnabled && queued > 0 {
		// Keep FIFO order: enqueue, then hand the oldest task to the
		// new worker.
		p.tasks.Push(entry)
		entry, _ = p.tasks.Pop()
	}
	p.mu.Unlock()

	go p.worker(entry)
	p.notifySubmitWaiter()
	return nil
}

func (p *Pool[R, V]) worker(entry pending) {
	for {
		entry.run()
		var ok bool
		if entry, ok = p.next(); !ok {
			return
		}
	}
}

func (p *Pool[R, V]) next() (pending, bool) {
	p.mu.Lock()

	if p.ctx.Err() != nil {
		// Pool context canceled: fail whatever is still queued so no
		// future is left pending forever.
		orphans := p.drainLocked()
		p.workerCount.Add(-1)
		p.workerWG.Done()
		p.mu.Unlock()
		cause := context.Cause(p.ctx)
		for _, orphan := range orphans {
			orphan.abort(cause)
		}
		return pending{}, false
	}

	entry, err := p.tasks.Pop()
	if err != nil {
		p.workerCount.Add(-1)
		p.workerWG.Done()
		p.mu.Unlock()
		p.notifySubmitWaiter()
		return pending{}, false
	}
	p.mu.Unlock()
	p.notifySubmitWaiter()
	return entry, true
}

func (p *Pool[R, V]) drainLocked() []pending {
	var orphans []pending
	for {
		entry, err := p.tasks.Pop()
		if err != nil {
			return orphans
		}
		orphans = append(orphans, entry)
	}
}

func (p *Pool[R, V]) notifySubmitWaiter() {
	select {
	case p.submitWaiters <- struct{}{}:
	default:
	}
}

// Stop prevents new submissions, lets queued and running tasks finish, then
// cancels the pool context. The returned future completes when shutdown is
// done.
func (p *Pool[R, V]) Stop() *Future[struct{}, struct{}] {
	return Go(func() (struct{}, error) {
		p.mu.Lock()
		p.closed.Store(true)
		p.mu.Unlock()
		p.workerWG.Wait()
		p.cancel(ErrPoolStopped)
		return struct{}{}, nil
	})
}

// StopAndWait stops the pool and blocks until shutdown completes.
func (p *Pool[R, V]) StopAndWait() {
	_, _ = p.Stop().Get()
}
