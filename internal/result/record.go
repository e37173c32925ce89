// Package result implements the per-entity outcome accumulator: counters,
// timing, and the list of recorded failures for a single TestEntity, plus
// a composite variant that sums those fields over a Suite's children.
package result

import (
	"fmt"
	"time"

	"xctestgo/internal/classify"
)

// Failure is one recorded failure or skip, anchored to a source location.
type Failure struct {
	Description string
	Location    classify.SourceLocation
	Expected    bool // true for an assertion-style (expected) failure
}

// Record accumulates the outcome of a single leaf entity's execution.
//
// Invariants (spec.md §3/§4.A): StopTime is only meaningful once Start
// has been called; counters are monotonically non-decreasing;
// TotalFailureCount is always FailureCount+UnexpectedFailureCount; and
// HasSucceeded holds iff the run has stopped with zero total failures.
type Record struct {
	startTime *time.Time
	stopTime  *time.Time

	executionCount         int
	failureCount           int
	unexpectedFailureCount int
	skipCount              int

	failures []Failure
	skip     *Failure

	started bool
	stopped bool
}

// NewRecord constructs a fresh, unstarted Record.
func NewRecord() *Record {
	return &Record{}
}

// Start records the start time. Calling Start twice is a programming
// error and panics, matching spec.md §7's "abort on out-of-order
// lifecycle calls" resolution of its Open Question.
func (r *Record) Start(now time.Time) {
	if r.started {
		panic("result: Start called twice on the same Record")
	}
	r.started = true
	r.startTime = &now
}

// Stop records the stop time and increments ExecutionCount. Requires a
// prior Start; stopping an unstarted or already-stopped Record panics.
func (r *Record) Stop(now time.Time) {
	if !r.started {
		panic("result: Stop called before Start")
	}
	if r.stopped {
		panic("result: Stop called twice on the same Record")
	}
	r.stopped = true
	r.stopTime = &now
	r.executionCount++
}

// RecordFailure increments FailureCount (if expected) or
// UnexpectedFailureCount, and appends the failure to the ordered list.
// Must be called between Start and Stop.
func (r *Record) RecordFailure(description string, location classify.SourceLocation, expected bool) {
	if !r.started || r.stopped {
		panic("result: RecordFailure called outside of a running record")
	}
	if expected {
		r.failureCount++
	} else {
		r.unexpectedFailureCount++
	}
	r.failures = append(r.failures, Failure{Description: description, Location: location, Expected: expected})
}

// RecordSkip marks the record as skipped. Calling it twice is a
// programming error — a Case is skipped at most once.
func (r *Record) RecordSkip(description string, location classify.SourceLocation) {
	if r.skip != nil {
		panic("result: RecordSkip called twice on the same Record")
	}
	r.skip = &Failure{Description: description, Location: location}
	r.skipCount = 1
}

// StartTime returns the recorded start time, if any.
func (r *Record) StartTime() (time.Time, bool) {
	if r.startTime == nil {
		return time.Time{}, false
	}
	return *r.startTime, true
}

// StopTime returns the recorded stop time, if any.
func (r *Record) StopTime() (time.Time, bool) {
	if r.stopTime == nil {
		return time.Time{}, false
	}
	return *r.stopTime, true
}

// Duration is the wall-clock span between Start and Stop; it is only
// meaningful once both have been recorded.
func (r *Record) Duration() (time.Duration, bool) {
	if r.startTime == nil || r.stopTime == nil {
		return 0, false
	}
	return r.stopTime.Sub(*r.startTime), true
}

// ExecutionCount is 0 or 1 for a leaf: 0 iff the record was never
// started, 1 after Stop.
func (r *Record) ExecutionCount() int { return r.executionCount }

// FailureCount is the number of expected (assertion-style) failures.
func (r *Record) FailureCount() int { return r.failureCount }

// UnexpectedFailureCount is the number of failures that did not stem
// from an explicit assertion (errors thrown from setUp/body/tearDown).
func (r *Record) UnexpectedFailureCount() int { return r.unexpectedFailureCount }

// TotalFailureCount is FailureCount + UnexpectedFailureCount.
func (r *Record) TotalFailureCount() int { return r.failureCount + r.unexpectedFailureCount }

// SkipCount is 0 or 1 for a leaf.
func (r *Record) SkipCount() int { return r.skipCount }

// HasBeenSkipped reports whether RecordSkip was called.
func (r *Record) HasBeenSkipped() bool { return r.skip != nil }

// Failures returns the ordered list of recorded failures.
func (r *Record) Failures() []Failure {
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Skip returns the recorded skip, if any.
func (r *Record) Skip() (Failure, bool) {
	if r.skip == nil {
		return Failure{}, false
	}
	return *r.skip, true
}

// HasSucceeded holds iff the record has stopped with zero total
// failures (spec.md §3).
func (r *Record) HasSucceeded() bool {
	return r.stopped && r.TotalFailureCount() == 0
}

// String renders a short human summary, useful in diagnostics and test
// failure messages.
func (r *Record) String() string {
	d, ok := r.Duration()
	ds := "n/a"
	if ok {
		ds = d.String()
	}
	return fmt.Sprintf("Record(executed=%d failures=%d unexpected=%d skipped=%d duration=%s)",
		r.executionCount, r.failureCount, r.unexpectedFailureCount, r.skipCount, ds)
}

// Composite aggregates an ordered sequence of child records — its own
// counters are always the sum of its children's, recomputed on demand
// so the parent/child relationship can never drift.
type Composite struct {
	children []Accumulator
}

// Accumulator is the minimal surface a Composite needs from each child:
// implemented by both *Record and *Composite, so suites nest arbitrarily.
type Accumulator interface {
	ExecutionCount() int
	FailureCount() int
	UnexpectedFailureCount() int
	TotalFailureCount() int
	SkipCount() int
	Duration() (time.Duration, bool)
	StartTime() (time.Time, bool)
	StopTime() (time.Time, bool)
	HasSucceeded() bool
}

// NewComposite constructs an empty composite record.
func NewComposite() *Composite {
	return &Composite{}
}

// Append adds a child's accumulator to the composite, in traversal
// order.
func (c *Composite) Append(child Accumulator) {
	c.children = append(c.children, child)
}

// Children returns the ordered list of child accumulators.
func (c *Composite) Children() []Accumulator {
	out := make([]Accumulator, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Composite) ExecutionCount() int {
	total := 0
	for _, ch := range c.children {
		total += ch.ExecutionCount()
	}
	return total
}

func (c *Composite) FailureCount() int {
	total := 0
	for _, ch := range c.children {
		total += ch.FailureCount()
	}
	return total
}

func (c *Composite) UnexpectedFailureCount() int {
	total := 0
	for _, ch := range c.children {
		total += ch.UnexpectedFailureCount()
	}
	return total
}

func (c *Composite) TotalFailureCount() int {
	return c.FailureCount() + c.UnexpectedFailureCount()
}

func (c *Composite) SkipCount() int {
	total := 0
	for _, ch := range c.children {
		total += ch.SkipCount()
	}
	return total
}

// StartTime is the earliest child start time, if any child has started.
func (c *Composite) StartTime() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, ch := range c.children {
		t, ok := ch.StartTime()
		if !ok {
			continue
		}
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}
	return earliest, found
}

// StopTime is the latest child stop time, if every child has stopped.
func (c *Composite) StopTime() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, ch := range c.children {
		t, ok := ch.StopTime()
		if !ok {
			return time.Time{}, false
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// Duration sums the individual child durations, so parallelizable
// wall-clock overlap (not modeled here — spec.md's Non-goals exclude
// parallel execution) never matters: it is simply additive.
func (c *Composite) Duration() (time.Duration, bool) {
	var total time.Duration
	any := false
	for _, ch := range c.children {
		d, ok := ch.Duration()
		if !ok {
			continue
		}
		total += d
		any = true
	}
	return total, any
}

// HasSucceeded holds iff every child has succeeded.
func (c *Composite) HasSucceeded() bool {
	if len(c.children) == 0 {
		return true
	}
	for _, ch := range c.children {
		if !ch.HasSucceeded() {
			return false
		}
	}
	return true
}
