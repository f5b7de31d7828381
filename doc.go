// Package oneshot provides single-slot, one-shot result futures: a producer
// running on its own goroutine delivers exactly one outcome (a value or an
// error), and a consumer retrieves it synchronously, blocking indefinitely,
// with a bounded wait, or not at all.
//
// The core types are [Future] on the consumer side and [Promise] on the
// producer side, connected by a capacity-1 handoff channel. The first
// successful retrieval adapts and caches the outcome; every later retrieval
// returns the cached outcome without touching the channel again, so a future
// can be read any number of times. Producer failures are cached and re-raised
// verbatim to every caller; wait failures ([ErrTimeout], [ErrNotReady]) are
// never cached and a later call may still succeed.
//
// [Run], [Pool] and [Group] launch producer tasks and hand back futures for
// their results.
package oneshot
