package oneshot

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrTimeout is returned by GetTimeout when the wait elapses before the
	// producer delivers an outcome. It is never cached: a later call may
	// still retrieve the outcome.
	ErrTimeout = errors.New("oneshot: wait timed out")

	// ErrNotReady is returned by TryGet when no outcome is queued yet.
	// It is never cached: a later call may still retrieve the outcome.
	ErrNotReady = errors.New("oneshot: no outcome ready")
)

// Future is the consumer side of a one-shot result handoff.
//
// A Future reads at most one raw outcome from its channel, adapts a success
// payload into the consumer-facing type exactly once, and caches the result.
// After the first successful retrieval every Get variant returns the cached
// outcome without touching the channel, so calls are idempotent. A Future is
// safe for concurrent use; getters racing for the single item serialize on an
// internal guard.
type Future[R, V any] struct {
	ch    <-chan Outcome[R]
	adapt func(R) V

	// sem is held while receiving from ch, so exactly one getter consumes
	// the single item and runs the adapter.
	sem       chan struct{}
	completed atomic.Bool
	cached    Outcome[V]
}

// New creates a Future reading from ch. The producer side must deliver at
// most one outcome on ch over the Future's lifetime. adapt converts the raw
// success payload into the consumer-facing value; it runs at most once, on
// the first successful retrieval. Use Identity when no adaptation is needed.
func New[R, V any](ch <-chan Outcome[R], adapt func(R) V) *Future[R, V] {
	if adapt == nil {
		panic(errors.New("oneshot: adapt must not be nil"))
	}
	return &Future[R, V]{
		ch:    ch,
		adapt: adapt,
		sem:   make(chan struct{}, 1),
	}
}

// Get blocks until the outcome is available and returns it. If the producer
// never delivers, Get blocks forever; use GetContext or GetTimeout for a
// bounded wait. After completion Get returns the cached outcome immediately.
func (f *Future[R, V]) Get() (V, error) {
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	f.sem <- struct{}{}
	defer func() { <-f.sem }()
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	return f.settle(<-f.ch)
}

// GetContext blocks until the outcome is available or ctx is done. A context
// error is returned as-is and never cached; the producer's outcome remains
// retrievable by a later call.
func (f *Future[R, V]) GetContext(ctx context.Context) (V, error) {
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	select {
	case f.sem <- struct{}{}:
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
	defer func() { <-f.sem }()
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	select {
	case raw := <-f.ch:
		return f.settle(raw)
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// GetTimeout blocks up to d for the outcome. If nothing arrives in time it
// returns ErrTimeout without caching anything; the wait only affects this
// call, never the producer, and a later call may still succeed.
func (f *Future[R, V]) GetTimeout(d time.Duration) (V, error) {
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case f.sem <- struct{}{}:
	case <-timer.C:
		var zero V
		return zero, ErrTimeout
	}
	defer func() { <-f.sem }()
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	select {
	case raw := <-f.ch:
		return f.settle(raw)
	case <-timer.C:
		var zero V
		return zero, ErrTimeout
	}
}

// TryGet returns the outcome if it is already available, without waiting.
// It returns ErrNotReady when nothing is queued or another getter is busy
// receiving; nothing is cached and a later call may still succeed.
func (f *Future[R, V]) TryGet() (V, error) {
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	select {
	case f.sem <- struct{}{}:
	default:
		var zero V
		return zero, ErrNotReady
	}
	defer func() { <-f.sem }()
	if f.completed.Load() {
		return f.cached.Unpack()
	}
	select {
	case raw := <-f.ch:
		return f.settle(raw)
	default:
		var zero V
		return zero, ErrNotReady
	}
}

// Completed reports whether an outcome has been retrieved and cached.
func (f *Future[R, V]) Completed() bool {
	return f.completed.Load()
}

// settle adapts and caches the raw outcome. The caller must hold sem.
// A producer failure is stored verbatim; the adapter never runs for it.
func (f *Future[R, V]) settle(raw Outcome[R]) (V, error) {
	if raw.Failed() {
		f.cached = Failure[V](raw.Err())
	} else {
		f.cached = Success(f.adapt(raw.Value()))
	}
	f.completed.Store(true)
	return f.cached.Unpack()
}

// Identity adapts a value to itself. It is the adapter for futures whose raw
// and consumer-facing types coincide.
func Identity[T any](v T) T { return v }
