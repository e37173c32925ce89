package result

import (
	"testing"
	"time"

	"xctestgo/internal/classify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Lifecycle(t *testing.T) {
	r := NewRecord()
	assert.Equal(t, 0, r.ExecutionCount())

	start := time.Now()
	r.Start(start)
	_, ok := r.StopTime()
	assert.False(t, ok)

	stop := start.Add(10 * time.Millisecond)
	r.Stop(stop)

	assert.Equal(t, 1, r.ExecutionCount())
	d, ok := r.Duration()
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, d)
	assert.True(t, r.HasSucceeded())
}

func TestRecord_DoubleStartPanics(t *testing.T) {
	r := NewRecord()
	r.Start(time.Now())
	assert.Panics(t, func() { r.Start(time.Now()) })
}

func TestRecord_StopBeforeStartPanics(t *testing.T) {
	r := NewRecord()
	assert.Panics(t, func() { r.Stop(time.Now()) })
}

func TestRecord_FailureCounters(t *testing.T) {
	r := NewRecord()
	r.Start(time.Now())
	r.RecordFailure("assertEqual mismatch", classify.SourceLocation{File: "x_test.go", Line: 1}, true)
	r.RecordFailure("threw error", classify.SourceLocation{File: "x_test.go", Line: 2}, false)
	r.Stop(time.Now())

	assert.Equal(t, 1, r.FailureCount())
	assert.Equal(t, 1, r.UnexpectedFailureCount())
	assert.Equal(t, 2, r.TotalFailureCount())
	assert.False(t, r.HasSucceeded())
	assert.Len(t, r.Failures(), 2)
}

func TestRecord_RecordFailureOutsideRunPanics(t *testing.T) {
	r := NewRecord()
	assert.Panics(t, func() {
		r.RecordFailure("oops", classify.SourceLocation{}, true)
	})
}

func TestRecord_Skip(t *testing.T) {
	r := NewRecord()
	r.Start(time.Now())
	r.RecordSkip("needs net", classify.SourceLocation{File: "x_test.go", Line: 3})
	r.Stop(time.Now())

	assert.Equal(t, 1, r.SkipCount())
	assert.True(t, r.HasBeenSkipped())
	assert.True(t, r.HasSucceeded()) // skip is not a failure
	assert.Panics(t, func() { r.RecordSkip("again", classify.SourceLocation{}) })
}

func TestComposite_SumsChildren(t *testing.T) {
	c := NewComposite()

	child1 := NewRecord()
	start1 := time.Now()
	child1.Start(start1)
	child1.RecordFailure("boom", classify.SourceLocation{}, true)
	child1.Stop(start1.Add(5 * time.Millisecond))

	child2 := NewRecord()
	start2 := start1.Add(1 * time.Millisecond)
	child2.Start(start2)
	child2.Stop(start2.Add(2 * time.Millisecond))

	c.Append(child1)
	c.Append(child2)

	assert.Equal(t, 2, c.ExecutionCount())
	assert.Equal(t, 1, c.FailureCount())
	assert.Equal(t, 0, c.UnexpectedFailureCount())
	assert.Equal(t, 1, c.TotalFailureCount())
	assert.False(t, c.HasSucceeded())

	d, ok := c.Duration()
	require.True(t, ok)
	assert.Equal(t, 7*time.Millisecond, d)
}

func TestComposite_NestedComposite(t *testing.T) {
	inner := NewComposite()
	leaf := NewRecord()
	leaf.Start(time.Now())
	leaf.Stop(time.Now())
	inner.Append(leaf)

	outer := NewComposite()
	outer.Append(inner)

	assert.Equal(t, 1, outer.ExecutionCount())
	assert.True(t, outer.HasSucceeded())
}

func TestComposite_EmptySucceeds(t *testing.T) {
	c := NewComposite()
	assert.True(t, c.HasSucceeded())
	assert.Equal(t, 0, c.ExecutionCount())
}
