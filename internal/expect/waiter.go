package expect

import (
	"sort"
	"time"

	"xctestgo/internal/classify"
)

// Result is the outcome of a Wait call.
type Result int

const (
	ResultCompleted Result = iota
	ResultTimedOut
	ResultIncorrectOrder
	ResultInvertedFulfillment
	ResultInterrupted
)

// String renders the result the way diagnostics and the default
// delegate's failure descriptions reference it.
func (r Result) String() string {
	switch r {
	case ResultCompleted:
		return "completed"
	case ResultTimedOut:
		return "timedOut"
	case ResultIncorrectOrder:
		return "incorrectOrder"
	case ResultInvertedFulfillment:
		return "invertedFulfillment"
	case ResultInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Outcome is the full result of a Wait call, including whatever
// associated data the particular Result variant carries.
type Outcome struct {
	Result Result

	// Unfulfilled is populated for ResultTimedOut.
	Unfulfilled []*Expectation

	// ActualOrder and RequiredOrder are populated for ResultIncorrectOrder.
	ActualOrder   []*Expectation
	RequiredOrder []*Expectation

	// InvertedExpectation is populated for ResultInvertedFulfillment.
	InvertedExpectation *Expectation

	// InterruptedBy is populated for ResultInterrupted: the outer Waiter
	// whose own timeout forced this one to finish early.
	InterruptedBy *Waiter
}

// Delegate receives notifications about a Waiter's lifecycle, always on
// the delegate-serialization queue, never on the subsystem queue.
type Delegate interface {
	DidTimeoutWithUnfulfilled(unfulfilled []*Expectation)
	FulfillmentDidViolateOrderingConstraints(got, required []*Expectation)
	DidFulfillInvertedExpectation(e *Expectation)
	NestedWaiterWasInterruptedBy(outer *Waiter)
}

type waiterState int

const (
	waiterReady waiterState = iota
	waiterWaiting
	waiterFinished
)

// Waiter blocks the calling goroutine until a set of expectations is
// satisfied, times out, is ordered-violated, is inverted-fulfilled, or
// is interrupted by an outer Waiter's timeout.
type Waiter struct {
	id string

	state        waiterState
	expectations []*Expectation
	enforceOrder bool
	timeout      time.Duration
	waitLocation classify.SourceLocation
	delegate     Delegate
	manager      *Manager
	outcome      Outcome

	wake chan struct{}
}

// WaitLocation is the source location Wait was called from.
func (w *Waiter) WaitLocation() classify.SourceLocation { return w.waitLocation }

// Expectations returns the ordered list of expectations this waiter
// was given.
func (w *Waiter) Expectations() []*Expectation {
	out := make([]*Expectation, len(w.expectations))
	copy(out, w.expectations)
	return out
}

// Wait blocks the calling goroutine until every non-inverted expectation
// in expectations is fulfilled, the timeout elapses, an ordering
// violation is detected (when enforceOrder is set), an inverted
// expectation is fulfilled, or an outer Waiter's timeout interrupts it.
//
// Duplicate expectations in the input are a programming error and
// panic, per spec.md §4.E.
func Wait(manager *Manager, expectations []*Expectation, timeout time.Duration, enforceOrder bool, location classify.SourceLocation, delegate Delegate, clock Clock) Outcome {
	if len(expectations) == 0 {
		panic("expect: Wait called with no expectations")
	}
	seen := make(map[*Expectation]bool, len(expectations))
	for _, e := range expectations {
		if seen[e] {
			panic("expect: duplicate expectation passed to Wait")
		}
		seen[e] = true
	}
	if clock == nil {
		clock = RealClock{}
	}

	w := &Waiter{
		id:           newID(),
		expectations: append([]*Expectation(nil), expectations...),
		enforceOrder: enforceOrder,
		timeout:      timeout,
		waitLocation: location,
		delegate:     delegate,
		manager:      manager,
		wake:         make(chan struct{}, 1),
	}

	queue.lock()
	for _, e := range expectations {
		if e.hasBeenWaitedOn {
			queue.unlock()
			panic("expect: an expectation may only be waited on once")
		}
	}
	for _, e := range expectations {
		e.attachWaiterLocked(w.onExpectationFulfilled)
	}
	w.state = waiterWaiting
	queue.unlock()

	manager.register(w)

	// An expectation fulfilled before Wait was ever called satisfies the
	// wait unconditionally (spec.md §8 boundary behavior); check for
	// that right after registration, before entering the suspension
	// loop. A zero timeout is resolved by the loop's first deadline check.
	w.validate(false)

	w.waitLoop(clock)

	manager.deregister(w)

	queue.lock()
	for _, e := range expectations {
		e.detachLocked()
	}
	outcome := w.outcome
	queue.unlock()

	// Block until any delegate callback dispatched for this waiter has
	// finished, so the caller never observes Wait returning before the
	// failure it implies (if any) has been recorded.
	delegateQueue.drain()

	return outcome
}

func (w *Waiter) waitLoop(clock Clock) {
	deadline := clock.Now().Add(w.timeout)
	const sliceCeiling = 100 * time.Millisecond

	for {
		if w.isFinished() {
			return
		}

		remaining := deadline.Sub(clock.Now())
		if remaining <= 0 {
			w.manager.interruptInner(w)
			w.validate(true)
			if w.isFinished() {
				return
			}
			// A concurrent fulfillment raced the timeout and completed
			// the waiter between our deadline check and validate();
			// loop around to observe the Finished state cleanly.
			continue
		}

		slice := remaining
		if slice > sliceCeiling {
			slice = sliceCeiling
		}
		timer := time.NewTimer(slice)
		select {
		case <-w.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

func (w *Waiter) isFinished() bool {
	queue.lock()
	defer queue.unlock()
	return w.state == waiterFinished
}

func (w *Waiter) wakeSelf() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// onExpectationFulfilled is installed as every observed expectation's
// onFulfillHandler for the duration of this wait; it simply reenters
// validation.
func (w *Waiter) onExpectationFulfilled() {
	w.validate(false)
}

// validate re-evaluates the waiter's expectations and transitions it to
// Finished if a terminal condition is met. It is invoked after every
// fulfillment and, with dueToTimeout set, when the deadline elapses.
func (w *Waiter) validate(dueToTimeout bool) {
	queue.lock()
	if w.state != waiterWaiting {
		queue.unlock()
		return
	}

	var fulfilled, unfulfilledNonInverted []*Expectation
	for _, e := range w.expectations {
		if e.isFulfilled {
			fulfilled = append(fulfilled, e)
		} else if !e.isInverted {
			unfulfilledNonInverted = append(unfulfilledNonInverted, e)
		}
	}

	for _, e := range fulfilled {
		if e.isInverted {
			w.finishLocked(Outcome{Result: ResultInvertedFulfillment, InvertedExpectation: e})
			queue.unlock()
			delegateQueue.dispatch(func() {
				if w.delegate != nil {
					w.delegate.DidFulfillInvertedExpectation(e)
				}
			})
			w.wakeSelf()
			return
		}
	}

	nonInverted := nonInvertedOf(w.expectations)

	if w.enforceOrder {
		fulfilledNonInverted := nonInvertedOf(fulfilled)
		sort.Slice(fulfilledNonInverted, func(i, j int) bool {
			return fulfilledNonInverted[i].fulfillmentToken < fulfilledNonInverted[j].fulfillmentToken
		})
		for i, e := range fulfilledNonInverted {
			if i >= len(nonInverted) || nonInverted[i] != e {
				got := fulfilledNonInverted
				required := nonInverted
				w.finishLocked(Outcome{Result: ResultIncorrectOrder, ActualOrder: got, RequiredOrder: required})
				queue.unlock()
				delegateQueue.dispatch(func() {
					if w.delegate != nil {
						w.delegate.FulfillmentDidViolateOrderingConstraints(got, required)
					}
				})
				w.wakeSelf()
				return
			}
		}
	}

	if len(nonInverted) > 0 && len(unfulfilledNonInverted) == 0 {
		w.finishLocked(Outcome{Result: ResultCompleted})
		queue.unlock()
		w.wakeSelf()
		return
	}

	if dueToTimeout {
		if len(unfulfilledNonInverted) == 0 {
			w.finishLocked(Outcome{Result: ResultCompleted})
			queue.unlock()
			w.wakeSelf()
			return
		}
		unfulfilled := append([]*Expectation(nil), unfulfilledNonInverted...)
		w.finishLocked(Outcome{Result: ResultTimedOut, Unfulfilled: unfulfilled})
		queue.unlock()
		delegateQueue.dispatch(func() {
			if w.delegate != nil {
				w.delegate.DidTimeoutWithUnfulfilled(unfulfilled)
			}
		})
		w.wakeSelf()
		return
	}

	queue.unlock()
}

// finishLocked transitions the waiter to Finished. Caller must hold queue.
func (w *Waiter) finishLocked(outcome Outcome) {
	w.state = waiterFinished
	w.outcome = outcome
}

// finishInterrupted is called by a Manager when an outer Waiter's
// timeout forces this (inner) waiter to finish early.
func (w *Waiter) finishInterrupted(outer *Waiter) {
	queue.lock()
	if w.state != waiterWaiting {
		queue.unlock()
		return
	}
	w.finishLocked(Outcome{Result: ResultInterrupted, InterruptedBy: outer})
	queue.unlock()
	delegateQueue.dispatch(func() {
		if w.delegate != nil {
			w.delegate.NestedWaiterWasInterruptedBy(outer)
		}
	})
	w.wakeSelf()
}

func (w *Waiter) stateLocked() waiterState { return w.state }

func nonInvertedOf(es []*Expectation) []*Expectation {
	var out []*Expectation
	for _, e := range es {
		if !e.isInverted {
			out = append(out, e)
		}
	}
	return out
}
