package observe

import (
	"testing"

	"xctestgo/internal/classify"
	"xctestgo/internal/result"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	BaseObserver
	events []string
}

func (r *recordingObserver) CaseWillStart(name string) {
	r.events = append(r.events, "start:"+name)
}

func (r *recordingObserver) CaseDidFinish(name string, _ result.Accumulator) {
	r.events = append(r.events, "finish:"+name)
}

func (r *recordingObserver) CaseDidFail(name, desc string, _ classify.SourceLocation, _ bool) {
	r.events = append(r.events, "fail:"+name+":"+desc)
}

type panickingObserver struct {
	BaseObserver
}

func (panickingObserver) CaseWillStart(string) {
	panic("observer bug")
}

func TestHub_DispatchesInInsertionOrder(t *testing.T) {
	h := NewHub()
	first := &recordingObserver{}
	second := &recordingObserver{}
	h.Add(first)
	h.Add(second)

	h.CaseWillStart("A.t1")
	h.CaseDidFail("A.t1", "mismatch", classify.SourceLocation{}, true)
	h.CaseDidFinish("A.t1", result.NewRecord())

	for _, o := range []*recordingObserver{first, second} {
		assert.Equal(t, []string{"start:A.t1", "fail:A.t1:mismatch", "finish:A.t1"}, o.events)
	}
}

func TestHub_TolerantOfObserverPanic(t *testing.T) {
	h := NewHub()
	h.Add(panickingObserver{})
	after := &recordingObserver{}
	h.Add(after)

	assert.NotPanics(t, func() { h.CaseWillStart("A.t1") })
	assert.Equal(t, []string{"start:A.t1"}, after.events)
}

func TestHub_Remove(t *testing.T) {
	h := NewHub()
	o := &recordingObserver{}
	h.Add(o)
	h.Remove(o)

	h.CaseWillStart("A.t1")
	assert.Empty(t, o.events)
}

func TestHub_AddIdempotent(t *testing.T) {
	h := NewHub()
	o := &recordingObserver{}
	h.Add(o)
	h.Add(o)

	h.CaseWillStart("A.t1")
	assert.Equal(t, []string{"start:A.t1"}, o.events)
}
