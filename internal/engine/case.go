// Package engine implements the execution template shared by every
// TestEntity: instantiate a record, start it, run the entity's body,
// tear it down, stop it.
package engine

import (
	"fmt"
	"time"

	"xctestgo/internal/activecase"
	"xctestgo/internal/classify"
	"xctestgo/internal/expect"
	"xctestgo/internal/observe"
	"xctestgo/internal/result"
)

// Case is a single test invocation: one method on one test class.
type Case struct {
	ClassName  string
	MethodName string

	// SetUpThrowing and SetUpNonThrowing run, in that order, before Body.
	// Either may be nil.
	SetUpThrowing    func() error
	SetUpNonThrowing func()

	// TearDownNonThrowing and TearDownThrowing run, in that order, after
	// Body and any registered teardown blocks. Either may be nil.
	TearDownNonThrowing func()
	TearDownThrowing    func() error

	// Body is the test closure itself.
	Body func(c *Case) error

	manager        *expect.Manager
	expectations   []*expect.Expectation
	teardownBlocks []func() error

	// skipInvocation prevents Body from running; it is set for any
	// setUp error, skip-classified or not (spec.md §4.B step 1).
	skipInvocation bool
	// skip is populated only when the setUp or body error is actually
	// Skip-classified, and is what gets persisted via RecordSkip —
	// distinct from skipInvocation, which an ordinary setUp failure
	// also sets without being reported as a skip.
	skip   *classify.Skip
	record *result.Record
	hub    *observe.Hub

	// classSetUpError is injected by the owning Suite when the class's
	// once-per-class setUp fails; it is recorded against this case's own
	// record once started, since the suite boundary has none of its own.
	classSetUpError error
}

// DisplayName renders "ClassName.methodName", the identifier used in
// failure lines and listings.
func (c *Case) DisplayName() string {
	return fmt.Sprintf("%s.%s", c.ClassName, c.MethodName)
}

// CaseCount is always 1 for a leaf Case.
func (c *Case) CaseCount() int { return 1 }

// NewExpectation creates an Expectation owned by this Case; any
// expectation still unfulfilled and unwaited when the body ends is
// recorded as a failure at its creation location.
func (c *Case) NewExpectation(description string, location classify.SourceLocation) *expect.Expectation {
	e := expect.New(description, location)
	c.expectations = append(c.expectations, e)
	return e
}

// Wait blocks until expectations is satisfied, times out, or is
// otherwise resolved, using the Case itself as the default delegate
// (spec.md §7: "reporting [timeouts] as test failures is the
// delegate's job, and the default delegate is the Case").
func (c *Case) Wait(expectations []*expect.Expectation, timeout time.Duration, enforceOrder bool, location classify.SourceLocation) expect.Outcome {
	return expect.Wait(c.manager, expectations, timeout, enforceOrder, location, c, nil)
}

// AddTeardownBlock registers a cleanup closure to run, in reverse
// registration order, during the teardown sequence.
func (c *Case) AddTeardownBlock(block func() error) {
	c.teardownBlocks = append(c.teardownBlocks, block)
}

// RecordFailure satisfies activecase.Recorder, routing assertion and
// expectation failures into this Case's record while its body runs,
// and fanning the event out to the observation hub.
func (c *Case) RecordFailure(description string, location classify.SourceLocation, expected bool) {
	if c.record == nil {
		return
	}
	c.record.RecordFailure(description, location, expected)
	if c.hub != nil {
		c.hub.CaseDidFail(c.DisplayName(), description, location, expected)
	}
}

// Execute runs the full Case lifecycle template and returns the
// resulting record.
func (c *Case) Execute(hub *observe.Hub) result.Accumulator {
	c.manager = expect.NewManager()
	c.record = result.NewRecord()
	c.hub = hub

	hub.CaseWillStart(c.DisplayName())
	c.record.Start(time.Now())

	if c.classSetUpError != nil {
		loc, message := locationOf(c.classSetUpError)
		c.RecordFailure(message, loc, false)
		c.skipInvocation = true
	}

	activecase.Set(c)
	c.preBody()
	c.body()
	c.postBody()
	activecase.Clear()

	c.record.Stop(time.Now())
	hub.CaseDidFinish(c.DisplayName(), c.record)

	return c.record
}

func (c *Case) preBody() {
	if c.SetUpThrowing != nil {
		if err := c.SetUpThrowing(); err != nil {
			c.classifyAndRecord(err)
		}
	}
	if c.SetUpNonThrowing != nil {
		c.SetUpNonThrowing()
	}
}

func (c *Case) body() {
	if !c.skipInvocation && c.Body != nil {
		if err := c.Body(c); err != nil {
			c.classifyAndRecord(err)
		}
	}
	c.validateUnwaitedExpectations()
}

func (c *Case) postBody() {
	if c.skip != nil {
		c.recordSkip(c.skip.Summary(), c.skip.Location)
	}
	c.runTeardownBlocks()
	if c.TearDownNonThrowing != nil {
		c.TearDownNonThrowing()
	}
	if c.TearDownThrowing != nil {
		if err := c.TearDownThrowing(); err != nil {
			loc, message := locationOf(err)
			c.RecordFailure(message, loc, false)
		}
	}
}

func (c *Case) recordSkip(description string, location classify.SourceLocation) {
	c.record.RecordSkip(description, location)
	if c.hub != nil {
		c.hub.CaseWasSkipped(c.DisplayName(), description, location)
	}
}

func (c *Case) runTeardownBlocks() {
	for i := len(c.teardownBlocks) - 1; i >= 0; i-- {
		if err := c.teardownBlocks[i](); err != nil {
			loc, message := locationOf(err)
			c.RecordFailure(message, loc, false)
		}
	}
}

func (c *Case) validateUnwaitedExpectations() {
	for _, e := range c.expectations {
		if e.HasBeenWaitedOn() {
			continue
		}
		if e.IsFulfilled() {
			continue
		}
		c.RecordFailure("Failed due to unwaited expectations", e.CreationLocation(), true)
	}
}

// classifyAndRecord handles an error thrown from setUp or Body: it is
// classified, an unexpected failure is recorded if called for (errors
// thrown outside an assertion context are always unexpected, unlike
// assertion failures which are recorded as expected directly by the
// assert package), and the case's skip state is updated.
func (c *Case) classifyAndRecord(err error) {
	classification := classify.Classify(err)
	loc, message := locationOf(err)

	if classification.RecordAsFailure {
		c.RecordFailure(fmt.Sprintf("threw error %q", message), loc, false)
	}
	if classification.SkipTestInvocation {
		c.skipInvocation = true
	}
	if classification.RecordAsSkip {
		if s, ok := asSkip(err); ok {
			c.skip = s
		} else {
			c.skip = classify.NewSkip(message, loc)
		}
	}
}

func asSkip(err error) (*classify.Skip, bool) {
	type unwrapper interface{ Unwrap() error }
	for {
		if s, ok := err.(*classify.Skip); ok {
			return s, true
		}
		u, ok := err.(unwrapper)
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
		if err == nil {
			return nil, false
		}
	}
}

func locationOf(err error) (classify.SourceLocation, string) {
	if s, ok := err.(*classify.Skip); ok {
		return s.Location, s.Summary()
	}
	return classify.SourceLocation{}, err.Error()
}

var (
	_ expect.Delegate     = (*Case)(nil)
	_ activecase.Recorder = (*Case)(nil)
)

// DidTimeoutWithUnfulfilled implements expect.Delegate: a wait that
// times out is an expected test failure attributed to the wait's own
// location would be more precise, but the subsystem does not thread
// that through the callback, so the failure is attributed generically.
func (c *Case) DidTimeoutWithUnfulfilled(unfulfilled []*expect.Expectation) {
	descriptions := make([]string, len(unfulfilled))
	for i, e := range unfulfilled {
		descriptions[i] = e.Description()
	}
	c.RecordFailure(fmt.Sprintf("Asynchronous wait failed: exceeded timeout, unfulfilled expectations: %v", descriptions), classify.SourceLocation{}, true)
}

// FulfillmentDidViolateOrderingConstraints implements expect.Delegate.
func (c *Case) FulfillmentDidViolateOrderingConstraints(got, required []*expect.Expectation) {
	c.RecordFailure("Asynchronous wait failed: expectations were fulfilled out of the required order", classify.SourceLocation{}, true)
}

// DidFulfillInvertedExpectation implements expect.Delegate.
func (c *Case) DidFulfillInvertedExpectation(e *expect.Expectation) {
	c.RecordFailure(fmt.Sprintf("Inverted expectation fulfilled: %q", e.Description()), classify.SourceLocation{}, true)
}

// NestedWaiterWasInterruptedBy implements expect.Delegate.
func (c *Case) NestedWaiterWasInterruptedBy(outer *expect.Waiter) {
	c.RecordFailure("Asynchronous wait was interrupted by an outer wait's timeout", classify.SourceLocation{}, true)
}
