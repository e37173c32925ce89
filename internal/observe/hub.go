// Package observe implements the observation fan-out that lets external
// observers track test lifecycle events: bundle/suite/case start and
// finish, failures, and skips.
package observe

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"xctestgo/internal/classify"
	"xctestgo/internal/result"
)

// Observer receives lifecycle callbacks during a run. Implementations
// must not assume they are the only observer, and must not mutate the
// Hub they are registered with from inside a callback — Hub copies its
// observer set before each dispatch precisely so that is safe to ignore.
// Events themselves are delivered to the Hub in a fixed order (bundle,
// suite, and case lifecycle calls happen one at a time from the
// executing goroutine); within the fan-out for a single event, Hub may
// call registered observers concurrently, so an Observer must not
// assume another Observer has already seen the same event.
type Observer interface {
	BundleWillStart(bundleName string)
	BundleDidFinish(bundleName string, root result.Accumulator)
	SuiteWillStart(suiteName string)
	SuiteDidFinish(suiteName string, record result.Accumulator)
	CaseWillStart(caseName string)
	CaseDidFinish(caseName string, record result.Accumulator)
	CaseDidFail(caseName, description string, location classify.SourceLocation, expected bool)
	CaseWasSkipped(caseName, description string, location classify.SourceLocation)
}

// Hub is an identity-set of Observers. Each event is dispatched
// synchronously: the call returns only after every observer has
// handled it. With a single observer that is a plain call; with
// several, the observers of one event run concurrently, so the order
// among them is not insertion order and is not defined. It tolerates
// panics raised from within an
// observer callback — one misbehaving observer must never abort a run
// or starve the others.
type Hub struct {
	mu        sync.Mutex
	observers []Observer
	index     map[Observer]int
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{index: make(map[Observer]int)}
}

// Add registers an observer, if it is not already registered.
func (h *Hub) Add(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.index[o]; exists {
		return
	}
	h.index[o] = len(h.observers)
	h.observers = append(h.observers, o)
}

// Remove deregisters an observer.
func (h *Hub) Remove(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, exists := h.index[o]
	if !exists {
		return
	}
	h.observers = append(h.observers[:idx], h.observers[idx+1:]...)
	delete(h.index, o)
	for i := idx; i < len(h.observers); i++ {
		h.index[h.observers[i]] = i
	}
}

// snapshot copies the observer slice under lock, so a dispatch never
// races a concurrent Add/Remove and never observes a mutation made from
// inside one of its own callbacks.
func (h *Hub) snapshot() []Observer {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Observer, len(h.observers))
	copy(out, h.observers)
	return out
}

// dispatch fans fn out to every registered observer. Observers run
// concurrently, bounded to the observer count, so one slow observer
// (e.g. a TUI repaint) never delays another (e.g. the console writer)
// within the same event.
func (h *Hub) dispatch(fn func(Observer)) {
	observers := h.snapshot()
	if len(observers) == 0 {
		return
	}
	if len(observers) == 1 {
		safeCall(observers[0], fn)
		return
	}
	var eg errgroup.Group
	for _, o := range observers {
		o := o
		eg.Go(func() error {
			safeCall(o, fn)
			return nil
		})
	}
	_ = eg.Wait()
}

func safeCall(o Observer, fn func(Observer)) {
	defer func() {
		_ = recover() // an observer's own bug must never break the run
	}()
	fn(o)
}

func (h *Hub) BundleWillStart(bundleName string) {
	h.dispatch(func(o Observer) { o.BundleWillStart(bundleName) })
}

func (h *Hub) BundleDidFinish(bundleName string, root result.Accumulator) {
	h.dispatch(func(o Observer) { o.BundleDidFinish(bundleName, root) })
}

func (h *Hub) SuiteWillStart(suiteName string) {
	h.dispatch(func(o Observer) { o.SuiteWillStart(suiteName) })
}

func (h *Hub) SuiteDidFinish(suiteName string, record result.Accumulator) {
	h.dispatch(func(o Observer) { o.SuiteDidFinish(suiteName, record) })
}

func (h *Hub) CaseWillStart(caseName string) {
	h.dispatch(func(o Observer) { o.CaseWillStart(caseName) })
}

func (h *Hub) CaseDidFinish(caseName string, record result.Accumulator) {
	h.dispatch(func(o Observer) { o.CaseDidFinish(caseName, record) })
}

func (h *Hub) CaseDidFail(caseName, description string, location classify.SourceLocation, expected bool) {
	h.dispatch(func(o Observer) { o.CaseDidFail(caseName, description, location, expected) })
}

func (h *Hub) CaseWasSkipped(caseName, description string, location classify.SourceLocation) {
	h.dispatch(func(o Observer) { o.CaseWasSkipped(caseName, description, location) })
}
