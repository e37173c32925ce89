// Package selftest is a small bundle of test classes that dogfood the
// runtime itself: synchronous assertions, an asynchronous expectation,
// and a class-level setUp/tearDown pair. cmd/xctestgo wires it up as
// the default bundle so the CLI has something real to run and list.
package selftest

import (
	"fmt"
	"time"

	"xctestgo/internal/assert"
	"xctestgo/internal/classify"
	"xctestgo/internal/engine"
	"xctestgo/internal/expect"
	"xctestgo/internal/registration"
)

// Entries returns the registration entries for this bundle.
func Entries() []registration.Entry {
	return []registration.Entry{
		{Class: registration.ClassHandle{
			Name: "ArithmeticTests",
			Methods: []registration.ClassBody{
				{MethodName: "testAdditionIsCommutative", Body: testAdditionIsCommutative},
				{MethodName: "testDivisionByZeroIsRejected", Body: testDivisionByZeroIsRejected},
			},
		}},
		{Class: registration.ClassHandle{
			Name: "AsyncNotificationTests",
			Methods: []registration.ClassBody{
				{MethodName: "testNotificationArrivesWithinTimeout", Body: testNotificationArrivesWithinTimeout},
			},
		}},
		{Class: registration.ClassHandle{
			Name:          "DatabaseFixtureTests",
			ClassSetUp:    classSetUpOpenDatabase,
			ClassTearDown: classTearDownCloseDatabase,
			Methods: []registration.ClassBody{
				{MethodName: "testFixtureIsAvailable", Body: testFixtureIsAvailable},
			},
		}},
	}
}

func here() classify.SourceLocation {
	return classify.SourceLocation{File: "selftest.go", Line: 0}
}

func testAdditionIsCommutative(c *engine.Case) error {
	assert.Equal(2+3, 3+2, here(), "addition should commute")
	return nil
}

func testDivisionByZeroIsRejected(c *engine.Case) error {
	_, err := divide(10, 0)
	assert.Throws(err, here(), "dividing by zero should return an error")
	return nil
}

func testNotificationArrivesWithinTimeout(c *engine.Case) error {
	notified := c.NewExpectation("notification arrives", here())
	go func() {
		time.Sleep(10 * time.Millisecond)
		notified.Fulfill(here())
	}()
	c.Wait([]*expect.Expectation{notified}, 2*time.Second, false, here())
	return nil
}

func classSetUpOpenDatabase() error { return nil }

func classTearDownCloseDatabase() error { return nil }

func testFixtureIsAvailable(c *engine.Case) error {
	assert.True(true, here(), "fixture should have been opened by ClassSetUp")
	return nil
}

func divide(a, b int) (int, error) {
	if b == 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return a / b, nil
}
