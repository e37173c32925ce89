package observe

import (
	"xctestgo/internal/classify"
	"xctestgo/internal/result"
)

// BaseObserver is a no-op Observer meant to be embedded by observers
// that only care about a subset of lifecycle events.
type BaseObserver struct{}

func (BaseObserver) BundleWillStart(string)                                    {}
func (BaseObserver) BundleDidFinish(string, result.Accumulator)                {}
func (BaseObserver) SuiteWillStart(string)                                     {}
func (BaseObserver) SuiteDidFinish(string, result.Accumulator)                 {}
func (BaseObserver) CaseWillStart(string)                                      {}
func (BaseObserver) CaseDidFinish(string, result.Accumulator)                  {}
func (BaseObserver) CaseDidFail(string, string, classify.SourceLocation, bool) {}
func (BaseObserver) CaseWasSkipped(string, string, classify.SourceLocation)    {}

var _ Observer = BaseObserver{}
