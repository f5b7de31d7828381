// Package queue provides the typed FIFO holding a pool's pending tasks.
package queue

import (
	"errors"

	ring "github.com/eapache/queue"
)

// ErrEmpty is returned when the queue has no elements to pop.
var ErrEmpty = errors.New("queue empty")

// Queue is a generic FIFO backed by a growable ring buffer.
// Not safe for concurrent use; callers provide their own locking.
type Queue[T any] struct {
	buf *ring.Queue
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{buf: ring.New()}
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return q.buf.Length()
}

// Push appends v to the tail of the queue.
func (q *Queue[T]) Push(v T) {
	q.buf.Add(v)
}

// Pop removes and returns the head of the queue.
// Returns ErrEmpty if the queue has no elements.
func (q *Queue[T]) Pop() (T, error) {
	if q.buf.Length() == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.buf.Remove().(T), nil
}
