// Package activecase holds the single task-local "current case" slot that
// AssertionEvaluator and the expectation/waiter subsystem reach through to
// route failures into whichever Case is presently executing, without
// argument-threading and without cross-test leakage (spec.md §9).
//
// The execution engine is single-threaded and sequential (spec.md §5):
// exactly one Case body runs at a time, so a single process-wide slot,
// set at body entry and cleared at body exit, is sufficient — even
// though expectation fulfillment may be called from other goroutines
// while that Case's body is suspended in a Wait call.
package activecase

import (
	"sync"

	"xctestgo/internal/classify"
)

// Recorder is the minimal surface the active Case exposes: enough to
// route a failure into its ResultRecord. Defined here (rather than
// importing the engine package) to keep this package free of a
// dependency cycle with engine, assert, and expect.
type Recorder interface {
	RecordFailure(description string, location classify.SourceLocation, expected bool)
}

var (
	mu      sync.Mutex
	current Recorder
)

// Set installs the active Case for the duration of its body execution.
func Set(r Recorder) {
	mu.Lock()
	current = r
	mu.Unlock()
}

// Clear removes the active Case at body exit.
func Clear() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

// RecordFailure routes a failure to the active Case, if any. Per
// spec.md §4.C, if no Case is currently active the failure is silently
// dropped — this keeps assertion and expectation helpers safely
// callable outside of a running test.
func RecordFailure(description string, location classify.SourceLocation, expected bool) {
	mu.Lock()
	r := current
	mu.Unlock()
	if r == nil {
		return
	}
	r.RecordFailure(description, location, expected)
}
