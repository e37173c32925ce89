package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assertlib "xctestgo/internal/assert"
	"xctestgo/internal/classify"
	"xctestgo/internal/expect"
	"xctestgo/internal/observe"
	"xctestgo/internal/result"
)

func loc() classify.SourceLocation {
	return classify.SourceLocation{File: "engine_test.go", Line: 1}
}

func leaf(t *testing.T, acc result.Accumulator) *result.Record {
	t.Helper()
	r, ok := acc.(*result.Record)
	require.True(t, ok, "expected a leaf *result.Record")
	return r
}

func TestCase_PassingBodySucceeds(t *testing.T) {
	c := &Case{ClassName: "A", MethodName: "t1", Body: func(c *Case) error { return nil }}
	record := c.Execute(observe.NewHub())

	assert.True(t, record.HasSucceeded())
	assert.Equal(t, 1, record.ExecutionCount())
}

func TestCase_FailingAssertionRecordsExpectedFailure(t *testing.T) {
	c := &Case{ClassName: "A", MethodName: "t2", Body: func(c *Case) error {
		assertlib.Equal(1, 2, loc())
		return nil
	}}
	record := c.Execute(observe.NewHub())

	require.Equal(t, 1, record.FailureCount())
	assert.Equal(t, 0, record.UnexpectedFailureCount())
	assert.False(t, record.HasSucceeded())
}

func TestCase_ThrownErrorRecordsUnexpectedFailure(t *testing.T) {
	c := &Case{ClassName: "A", MethodName: "t3", Body: func(c *Case) error {
		return errors.New("boom")
	}}
	record := leaf(t, c.Execute(observe.NewHub()))

	require.Equal(t, 1, record.UnexpectedFailureCount())
	assert.Equal(t, 0, record.FailureCount())
	assert.Contains(t, record.Failures()[0].Description, `threw error "boom"`)
}

func TestCase_SkipInSetUpPreventsBodyButRunsTeardown(t *testing.T) {
	tornDown := false
	c := &Case{
		ClassName:  "A",
		MethodName: "t4",
		SetUpThrowing: func() error {
			return classify.NewSkip("needs net", loc())
		},
		Body: func(c *Case) error {
			t.Fatal("body should not have run")
			return nil
		},
		TearDownNonThrowing: func() { tornDown = true },
	}
	record := leaf(t, c.Execute(observe.NewHub()))

	assert.True(t, record.HasBeenSkipped())
	assert.Equal(t, 0, record.FailureCount())
	assert.True(t, tornDown)
}

func TestCase_TeardownBlocksRunInReverseOrder(t *testing.T) {
	var order []int
	c := &Case{
		ClassName:  "A",
		MethodName: "t5",
		Body: func(c *Case) error {
			c.AddTeardownBlock(func() error { order = append(order, 1); return nil })
			c.AddTeardownBlock(func() error { order = append(order, 2); return nil })
			c.AddTeardownBlock(func() error { order = append(order, 3); return nil })
			return nil
		},
	}
	c.Execute(observe.NewHub())

	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestCase_UnwaitedExpectationFailsAtCreationLocation(t *testing.T) {
	c := &Case{
		ClassName:  "A",
		MethodName: "t6",
		Body: func(c *Case) error {
			c.NewExpectation("never waited", classify.SourceLocation{File: "x.go", Line: 42})
			return nil
		},
	}
	record := leaf(t, c.Execute(observe.NewHub()))

	require.Equal(t, 1, record.FailureCount())
	assert.Equal(t, uint32(42), record.Failures()[0].Location.Line)
}

func TestCase_AsyncExpectationFulfilledOnAnotherGoroutine(t *testing.T) {
	c := &Case{
		ClassName:  "A",
		MethodName: "t7",
		Body: func(c *Case) error {
			e := c.NewExpectation("async", loc())
			go func() {
				time.Sleep(10 * time.Millisecond)
				e.Fulfill(loc())
			}()
			outcome := c.Wait([]*expect.Expectation{e}, time.Second, false, loc())
			if outcome.Result != expect.ResultCompleted {
				t.Errorf("expected completed, got %v", outcome.Result)
			}
			return nil
		},
	}
	record := c.Execute(observe.NewHub())

	assert.True(t, record.HasSucceeded())
}

func TestCase_OrderedWaiterViolationRecordsExpectedFailure(t *testing.T) {
	c := &Case{
		ClassName:  "A",
		MethodName: "t8",
		Body: func(c *Case) error {
			a := c.NewExpectation("a", loc())
			b := c.NewExpectation("b", loc())
			go func() {
				b.Fulfill(loc())
				a.Fulfill(loc())
			}()
			c.Wait([]*expect.Expectation{a, b}, time.Second, true, loc())
			return nil
		},
	}
	record := c.Execute(observe.NewHub())

	require.Equal(t, 1, record.FailureCount())
}

func TestSuite_ClassSetUpTearDownRunOncePerClass(t *testing.T) {
	setUpCalls, tearDownCalls := 0, 0
	suite := &Suite{
		Name: "A",
		ClassSetUp: func() error {
			setUpCalls++
			return nil
		},
		ClassTearDown: func() error {
			tearDownCalls++
			return nil
		},
		Children: []TestEntity{
			&Case{ClassName: "A", MethodName: "t1", Body: func(c *Case) error { return nil }},
			&Case{ClassName: "A", MethodName: "t2", Body: func(c *Case) error { return nil }},
		},
	}
	record := suite.Execute(observe.NewHub())

	assert.Equal(t, 1, setUpCalls)
	assert.Equal(t, 1, tearDownCalls)
	assert.Equal(t, 2, record.ExecutionCount())
}

func TestSuite_SelectorRunsOneMethod(t *testing.T) {
	t1Started, t2Started := false, false
	suite := &Suite{
		Name: "All tests",
		Children: []TestEntity{
			&Case{ClassName: "A", MethodName: "t1", Body: func(c *Case) error { t1Started = true; return nil }},
		},
	}
	_ = t2Started
	record := suite.Execute(observe.NewHub())

	assert.True(t, t1Started)
	assert.Equal(t, 1, record.ExecutionCount())
	assert.True(t, record.HasSucceeded())
}
