package oneshot

import (
	"sync"

	"go.uber.org/atomic"
)

// Promise is the producer side of a one-shot result handoff. Exactly one of
// Complete or Fail takes effect; later calls are no-ops, upholding the
// at-most-one-item contract of the handoff channel. A Promise is safe for
// concurrent use.
type Promise[R any] struct {
	ch        chan<- Outcome[R]
	once      sync.Once
	completed atomic.Bool
}

// NewPromise creates a connected Promise/Future pair sharing a capacity-1
// handoff channel. adapt converts the raw produced payload into the
// consumer-facing type on first retrieval.
func NewPromise[R, V any](adapt func(R) V) (*Promise[R], *Future[R, V]) {
	ch := make(chan Outcome[R], 1)
	return &Promise[R]{ch: ch}, New(ch, adapt)
}

// Complete delivers a successful value. Only the first Complete or Fail on a
// Promise takes effect.
func (p *Promise[R]) Complete(value R) {
	p.push(Success(value))
}

// Fail delivers a failure. The error is surfaced verbatim to every consumer
// retrieval; a nil err is recorded as ErrFailed. Only the first Complete or
// Fail on a Promise takes effect.
func (p *Promise[R]) Fail(err error) {
	p.push(Failure[R](err))
}

// Completed reports whether the Promise has delivered an outcome.
func (p *Promise[R]) Completed() bool {
	return p.completed.Load()
}

func (p *Promise[R]) push(o Outcome[R]) {
	p.once.Do(func() {
		// The channel has capacity 1 and only this send ever happens,
		// so the send cannot block.
		p.ch <- o
		p.completed.Store(true)
	})
}
