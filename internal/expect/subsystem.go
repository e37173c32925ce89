// Package expect implements the asynchronous expectation/waiter
// subsystem: Expectation, Waiter, and Manager (the per-Case nested-wait
// stack). All mutable state across these three types is protected by a
// single process-wide serial lock, the "subsystem queue" of spec.md §5 —
// not one lock per instance — so that fulfillment, registration, and
// validation can never interleave inconsistently across expectations
// that belong to different waits.
package expect

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// queue is the subsystem queue: the single serial execution context
// protecting every mutable field of Expectation, Waiter, and Manager.
var queue systemQueue

// delegateQueue is the separate serial queue delegate callbacks are
// dispatched on, so a delegate implementation can never reenter the
// subsystem queue from inside a callback (spec.md §5).
var delegateQueue = newSerialQueue()

func nextCreationToken() uint64 {
	return creationCounter.Add(1)
}

func nextFulfillmentToken() uint64 {
	return fulfillmentCounter.Add(1)
}

var (
	creationCounter    atomic.Uint64
	fulfillmentCounter atomic.Uint64
)

func newID() string {
	return uuid.NewString()
}
