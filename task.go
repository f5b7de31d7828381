package oneshot

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrPanic is the error a producer task's panic is converted into when panic
// recovery is enabled.
var ErrPanic = errors.New("task panicked")

// invoke runs a producer task, optionally converting a panic into an error
// that wraps ErrPanic and carries the stack trace.
func invoke[R any](task func() (R, error), catchPanics bool) (out R, err error) {
	if catchPanics {
		defer func() {
			if p := recover(); p != nil {
				if e, ok := p.(error); ok {
					err = fmt.Errorf("%w: %w\n%s", ErrPanic, e, debug.Stack())
				} else {
					err = fmt.Errorf("%w: %v\n%s", ErrPanic, p, debug.Stack())
				}
			}
		}()
	}
	return task()
}

// plain lifts a task without an error return into the (R, error) form.
func plain[R any](task func() R) func() (R, error) {
	return func() (R, error) {
		return task(), nil
	}
}
