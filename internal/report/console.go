// Package report implements the default textual observer: the
// canonical failure/skip/summary line formats of spec.md §6. The
// tabular test listing lives in cmd/list.go, not here.
package report

import (
	"fmt"
	"io"
	"time"

	"xctestgo/internal/classify"
	"xctestgo/internal/observe"
	"xctestgo/internal/result"
)

// ConsoleObserver writes the default textual report to w as the run
// progresses: a failure line per recorded failure, a skip line per
// recorded skip, and a summary line once the bundle finishes.
type ConsoleObserver struct {
	observe.BaseObserver

	w io.Writer

	executed    int
	skipped     int
	failures    int
	unexpected  int
	testStart   time.Time
	bundleStart time.Time
}

// NewConsoleObserver constructs a ConsoleObserver writing to w.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w}
}

// BundleWillStart implements observe.Observer.
func (c *ConsoleObserver) BundleWillStart(bundleName string) {
	c.bundleStart = time.Now()
}

// CaseWillStart implements observe.Observer.
func (c *ConsoleObserver) CaseWillStart(caseName string) {
	c.testStart = time.Now()
}

// CaseDidFinish implements observe.Observer.
func (c *ConsoleObserver) CaseDidFinish(caseName string, record result.Accumulator) {
	c.executed += record.ExecutionCount()
}

// CaseDidFail implements observe.Observer, writing the canonical
// failure line: "<file>:<line>: error: <caseName> : <description>".
func (c *ConsoleObserver) CaseDidFail(caseName, description string, location classify.SourceLocation, expected bool) {
	if !expected {
		c.unexpected++
	} else {
		c.failures++
	}
	fmt.Fprintf(c.w, "%s: error: %s : %s\n", location.String(), caseName, description)
}

// CaseWasSkipped implements observe.Observer, writing the canonical
// skip line: "<file>:<line>: <caseName> : <description>".
func (c *ConsoleObserver) CaseWasSkipped(caseName, description string, location classify.SourceLocation) {
	c.skipped++
	fmt.Fprintf(c.w, "%s: %s : %s\n", location.String(), caseName, description)
}

// BundleDidFinish implements observe.Observer, writing the canonical
// summary line once the whole run is complete.
func (c *ConsoleObserver) BundleDidFinish(bundleName string, root result.Accumulator) {
	testDuration, _ := root.Duration()
	totalDuration := time.Since(c.bundleStart)

	fmt.Fprintf(c.w, "Executed %d test(s), with %d test(s) skipped and %d failure(s) (%d unexpected) in %.3f (%.3f) seconds\n",
		root.ExecutionCount(), root.SkipCount(), root.TotalFailureCount(), root.UnexpectedFailureCount(),
		testDuration.Seconds(), totalDuration.Seconds())
}

var _ observe.Observer = (*ConsoleObserver)(nil)
