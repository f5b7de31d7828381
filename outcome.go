package oneshot

import "errors"

// ErrFailed is the error recorded when a producer reports failure without
// supplying an error of its own.
var ErrFailed = errors.New("oneshot: producer failed")

// Outcome is the terminal result of a producer: either a successfully
// produced value or the error that prevented one. The variant tag is
// explicit, so a success whose value happens to be the zero value is never
// mistaken for a failure or for a pending result.
type Outcome[V any] struct {
	value  V
	err    error
	failed bool
}

// Success returns a successful Outcome carrying value.
func Success[V any](value V) Outcome[V] {
	return Outcome[V]{value: value}
}

// Failure returns a failed Outcome carrying err.
// A nil err is replaced with ErrFailed so that a failure always unpacks to a
// non-nil error.
func Failure[V any](err error) Outcome[V] {
	if err == nil {
		err = ErrFailed
	}
	return Outcome[V]{err: err, failed: true}
}

// Failed reports whether the Outcome is the failure variant.
func (o Outcome[V]) Failed() bool { return o.failed }

// Value returns the carried value. It is the zero value for failures.
func (o Outcome[V]) Value() V { return o.value }

// Err returns the carried error, or nil for successes.
func (o Outcome[V]) Err() error { return o.err }

// Unpack returns the Outcome in Go's conventional (value, error) form.
func (o Outcome[V]) Unpack() (V, error) {
	return o.value, o.err
}
