package oneshot

import (
	"errors"
	"sync"
	"time"
)

// Group collects futures that share an adapter and waits for them together.
// The zero Group is not usable; create one with NewGroup.
type Group[R, V any] struct {
	adapt func(R) V

	mu      sync.Mutex
	futures []*Future[R, V]
}

// NewGroup creates a Group whose launched tasks adapt their raw results with
// adapt.
func NewGroup[R, V any](adapt func(R) V) *Group[R, V] {
	if adapt == nil {
		panic(errors.New("oneshot: adapt must not be nil"))
	}
	return &Group[R, V]{adapt: adapt}
}

// Add registers an already created future with the group.
func (g *Group[R, V]) Add(f *Future[R, V]) *Group[R, V] {
	g.mu.Lock()
	g.futures = append(g.futures, f)
	g.mu.Unlock()
	return g
}

// Go launches each task on its own goroutine via Run and registers the
// resulting futures.
func (g *Group[R, V]) Go(tasks ...func() (R, error)) *Group[R, V] {
	for _, task := range tasks {
		g.Add(Run(task, g.adapt))
	}
	return g
}

// Len returns the number of registered futures.
func (g *Group[R, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.futures)
}

// Wait blocks until every registered future completes. Values are returned
// in registration order; failed slots hold the zero value. The error is the
// first producer failure encountered in registration order, or nil.
func (g *Group[R, V]) Wait() ([]V, error) {
	futures := g.snapshot()
	values := make([]V, len(futures))
	var firstErr error
	for i, f := range futures {
		v, err := f.Get()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values[i] = v
	}
	return values, firstErr
}

// WaitTimeout is Wait with a single time budget of d shared across all
// registered futures. When the budget elapses it returns the values collected
// so far together with ErrTimeout; completed outcomes stay cached, so a later
// Wait resumes where this one stopped.
func (g *Group[R, V]) WaitTimeout(d time.Duration) ([]V, error) {
	deadline := time.Now().Add(d)
	futures := g.snapshot()
	values := make([]V, len(futures))
	var firstErr error
	for i, f := range futures {
		v, err := f.GetTimeout(time.Until(deadline))
		if err == ErrTimeout {
			return values, ErrTimeout
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values[i] = v
	}
	return values, firstErr
}

func (g *Group[R, V]) snapshot() []*Future[R, V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Future[R, V](nil), g.futures...)
}
