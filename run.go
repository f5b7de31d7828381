package oneshot

// Run launches task on its own goroutine and returns a Future for its result.
// A panic in the task is recovered and delivered as a failure wrapping
// ErrPanic. adapt converts the task's raw result into the consumer-facing
// type on first retrieval.
func Run[R, V any](task func() (R, error), adapt func(R) V) *Future[R, V] {
	promise, future := NewPromise[R, V](adapt)
	go func() {
		if value, err := invoke(task, true); err != nil {
			promise.Fail(err)
		} else {
			promise.Complete(value)
		}
	}()
	return future
}

// Go is Run without adaptation: the future yields the task's result as-is.
func Go[R any](task func() (R, error)) *Future[R, R] {
	return Run(task, Identity[R])
}
