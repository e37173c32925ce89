package expect

import (
	"fmt"

	"xctestgo/internal/activecase"
	"xctestgo/internal/classify"
)

// Expectation is a named promise that some event will occur a
// configurable number of times; it may be inverted (success means it is
// never fulfilled).
type Expectation struct {
	id string

	description      string
	creationToken    uint64
	creationLocation classify.SourceLocation

	isFulfilled          bool
	fulfillmentToken     uint64
	fulfillmentLocation  *classify.SourceLocation
	numberOfFulfillments uint32

	expectedFulfillmentCount uint32
	isInverted               bool
	assertForOverFulfill     bool
	hasBeenWaitedOn          bool

	onFulfillHandler func()
}

// New constructs an Expectation with a fresh, monotonically increasing
// creation token.
func New(description string, location classify.SourceLocation) *Expectation {
	queue.lock()
	defer queue.unlock()
	return &Expectation{
		id:                       newID(),
		description:              description,
		creationToken:            nextCreationToken(),
		creationLocation:         location,
		expectedFulfillmentCount: 1,
	}
}

// Description returns the expectation's human-readable description.
func (e *Expectation) Description() string {
	queue.lock()
	defer queue.unlock()
	return e.description
}

// CreationToken is the globally monotonic token assigned at construction.
func (e *Expectation) CreationToken() uint64 {
	queue.lock()
	defer queue.unlock()
	return e.creationToken
}

// CreationLocation is the source location the expectation was created at.
func (e *Expectation) CreationLocation() classify.SourceLocation {
	queue.lock()
	defer queue.unlock()
	return e.creationLocation
}

// IsFulfilled reports whether NumberOfFulfillments has reached
// ExpectedFulfillmentCount.
func (e *Expectation) IsFulfilled() bool {
	queue.lock()
	defer queue.unlock()
	return e.isFulfilled
}

// FulfillmentToken is the globally monotonic token stamped when the
// expectation transitioned to fulfilled; zero until then.
func (e *Expectation) FulfillmentToken() uint64 {
	queue.lock()
	defer queue.unlock()
	return e.fulfillmentToken
}

// FulfillmentLocation is the source location of the fulfilling call, if any.
func (e *Expectation) FulfillmentLocation() (classify.SourceLocation, bool) {
	queue.lock()
	defer queue.unlock()
	if e.fulfillmentLocation == nil {
		return classify.SourceLocation{}, false
	}
	return *e.fulfillmentLocation, true
}

// NumberOfFulfillments is the number of times Fulfill has been called.
func (e *Expectation) NumberOfFulfillments() uint32 {
	queue.lock()
	defer queue.unlock()
	return e.numberOfFulfillments
}

// ExpectedFulfillmentCount is the fulfillment count required to flip
// IsFulfilled.
func (e *Expectation) ExpectedFulfillmentCount() uint32 {
	queue.lock()
	defer queue.unlock()
	return e.expectedFulfillmentCount
}

// SetExpectedFulfillmentCount configures the required fulfillment
// count. It panics if called after the expectation has been waited on.
func (e *Expectation) SetExpectedFulfillmentCount(n uint32) {
	queue.lock()
	defer queue.unlock()
	e.mustNotBeWaitedOnLocked("expectedFulfillmentCount")
	e.expectedFulfillmentCount = n
}

// IsInverted reports whether fulfillment of this expectation is itself
// a failure condition.
func (e *Expectation) IsInverted() bool {
	queue.lock()
	defer queue.unlock()
	return e.isInverted
}

// SetInverted configures inversion. Panics if called after the
// expectation has been waited on.
func (e *Expectation) SetInverted(inverted bool) {
	queue.lock()
	defer queue.unlock()
	e.mustNotBeWaitedOnLocked("isInverted")
	e.isInverted = inverted
}

// AssertForOverFulfill reports whether a fulfillment beyond the first
// one to satisfy the expectation is itself a failure condition.
func (e *Expectation) AssertForOverFulfill() bool {
	queue.lock()
	defer queue.unlock()
	return e.assertForOverFulfill
}

// SetAssertForOverFulfill configures over-fulfillment assertion.
// Panics if called after the expectation has been waited on.
func (e *Expectation) SetAssertForOverFulfill(assert bool) {
	queue.lock()
	defer queue.unlock()
	e.mustNotBeWaitedOnLocked("assertForOverFulfill")
	e.assertForOverFulfill = assert
}

// SetDescription updates the description. Panics if called after the
// expectation has been waited on.
func (e *Expectation) SetDescription(description string) {
	queue.lock()
	defer queue.unlock()
	e.mustNotBeWaitedOnLocked("description")
	e.description = description
}

// HasBeenWaitedOn reports whether a Waiter has ever registered this
// expectation.
func (e *Expectation) HasBeenWaitedOn() bool {
	queue.lock()
	defer queue.unlock()
	return e.hasBeenWaitedOn
}

func (e *Expectation) mustNotBeWaitedOnLocked(field string) {
	if e.hasBeenWaitedOn {
		panic(fmt.Sprintf("expect: cannot set %s on expectation %q after it has been waited on", field, e.description))
	}
}

// Fulfill reports that the expectation's event occurred. It is safe to
// call from any goroutine. Every call increments NumberOfFulfillments.
// If the expectation was already fulfilled and AssertForOverFulfill is
// set, it then records a failure on the active Case and returns without
// invoking any waiter handler.
func (e *Expectation) Fulfill(location classify.SourceLocation) {
	queue.lock()

	e.numberOfFulfillments++

	if e.isFulfilled && e.assertForOverFulfill {
		queue.unlock()
		activecase.RecordFailure(
			fmt.Sprintf("API violation - multiple calls made to fulfill() for %q", e.description),
			location, true)
		return
	}

	var handler func()
	if !e.isFulfilled && e.numberOfFulfillments >= e.expectedFulfillmentCount {
		e.isFulfilled = true
		e.fulfillmentToken = nextFulfillmentToken()
		loc := location
		e.fulfillmentLocation = &loc
		handler = e.onFulfillHandler
	}
	queue.unlock()

	// The handler (installed by a Waiter for the duration of its wait)
	// runs after the queue lock is released, so it may safely re-lock
	// the queue itself to perform validation.
	if handler != nil {
		handler()
	}
}

// attachWaiterLocked installs the handler and marks the expectation as
// waited-on. Caller must hold queue.
func (e *Expectation) attachWaiterLocked(handler func()) {
	e.hasBeenWaitedOn = true
	e.onFulfillHandler = handler
}

// detachLocked removes the waiter's handler. Caller must hold queue.
func (e *Expectation) detachLocked() {
	e.onFulfillHandler = nil
}
