// Package assert implements the AssertionEvaluator: the single routing
// point every assertion helper funnels through on its way to the
// active Case's result record.
package assert

import (
	"fmt"
	"math"
	"reflect"

	"xctestgo/internal/activecase"
	"xctestgo/internal/classify"
)

// Kind identifies the family of assertion that produced a failure.
// Evaluate receives it but does not use it; each helper builds its own
// failure description.
type Kind int

const (
	KindEqual Kind = iota
	KindNotEqual
	KindNil
	KindNotNil
	KindTrue
	KindFalse
	KindGreaterThan
	KindGreaterThanOrEqual
	KindLessThan
	KindLessThanOrEqual
	KindNoThrow
	KindThrows
	KindFail
)

// Evaluate is the AssertionEvaluator: every helper in this package
// builds a description and location and calls through here, which
// records a failure on the active Case only if predicate is false.
// Outside a running Case it is a silent no-op, per activecase's
// "no case active" contract.
func Evaluate(kind Kind, location classify.SourceLocation, predicate bool, description string) {
	if predicate {
		return
	}
	activecase.RecordFailure(description, location, true)
}

// Fail unconditionally records a failure with the given message.
func Fail(message string, location classify.SourceLocation) {
	Evaluate(KindFail, location, false, message)
}

// True asserts that got is true.
func True(got bool, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindTrue, location, got, describe("is not true", msgAndArgs))
}

// False asserts that got is false.
func False(got bool, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindFalse, location, !got, describe("is not false", msgAndArgs))
}

// Nil asserts that v is nil (interpreting typed nils, e.g. a nil
// pointer or slice, as nil too).
func Nil(v any, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindNil, location, isNil(v), describe(fmt.Sprintf(`("%v") is not nil`, v), msgAndArgs))
}

// NotNil asserts that v is not nil.
func NotNil(v any, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindNotNil, location, !isNil(v), describe("is nil", msgAndArgs))
}

// Equal asserts that expected and actual are deeply equal, recording
// the canonical XCTest-style comparison description on failure.
func Equal(expected, actual any, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindEqual, location, reflect.DeepEqual(expected, actual),
		describe(fmt.Sprintf(`("%v") is not equal to ("%v")`, expected, actual), msgAndArgs))
}

// NotEqual asserts that expected and actual are not deeply equal.
func NotEqual(expected, actual any, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindNotEqual, location, !reflect.DeepEqual(expected, actual),
		describe(fmt.Sprintf(`("%v") is equal to ("%v")`, expected, actual), msgAndArgs))
}

// EqualWithAccuracy asserts that two floating point values are equal to
// within accuracy. Exact equality (==) is checked first so that
// self-equal special values, including +/-Inf, compare equal without
// being subjected to the accuracy arithmetic.
func EqualWithAccuracy(expected, actual, accuracy float64, location classify.SourceLocation, msgAndArgs ...any) {
	ok := expected == actual || math.Abs(expected-actual) <= accuracy
	Evaluate(KindEqual, location, ok,
		describe(fmt.Sprintf(`("%v") is not equal to ("%v") +/- ("%v")`, expected, actual, accuracy), msgAndArgs))
}

// GreaterThan asserts that got > than.
func GreaterThan(got, than float64, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindGreaterThan, location, got > than,
		describe(fmt.Sprintf(`("%v") is not greater than ("%v")`, got, than), msgAndArgs))
}

// GreaterThanOrEqual asserts that got >= than.
func GreaterThanOrEqual(got, than float64, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindGreaterThanOrEqual, location, got >= than,
		describe(fmt.Sprintf(`("%v") is not greater than or equal to ("%v")`, got, than), msgAndArgs))
}

// LessThan asserts that got < than.
func LessThan(got, than float64, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindLessThan, location, got < than,
		describe(fmt.Sprintf(`("%v") is not less than ("%v")`, got, than), msgAndArgs))
}

// LessThanOrEqual asserts that got <= than.
func LessThanOrEqual(got, than float64, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindLessThanOrEqual, location, got <= than,
		describe(fmt.Sprintf(`("%v") is not less than or equal to ("%v")`, got, than), msgAndArgs))
}

// NoThrow asserts that err is nil, recording "threw error: <err>"
// otherwise. Every non-nil err, an unwrap sentinel included, is
// reported with its own Error() text; no cause is unwrapped.
func NoThrow(err error, location classify.SourceLocation, msgAndArgs ...any) {
	if err == nil {
		return
	}
	Evaluate(KindNoThrow, location, false,
		describe(fmt.Sprintf("threw error: %v", err), msgAndArgs))
}

// Throws asserts that err is non-nil.
func Throws(err error, location classify.SourceLocation, msgAndArgs ...any) {
	Evaluate(KindThrows, location, err != nil,
		describe("expected an error to be thrown", msgAndArgs))
}

// Unwrap asserts that err is nil and returns value; if err is non-nil
// it records a failure wrapping err through classify.NewUnwrapSentinel
// so the Case body can propagate it as a skip-worthy control signal
// rather than continuing to execute against a zero value.
func Unwrap[T any](value T, err error, location classify.SourceLocation) (T, error) {
	if err == nil {
		return value, nil
	}
	Evaluate(KindFail, location, false, fmt.Sprintf("unwrap failed: %v", err))
	return value, classify.NewUnwrapSentinel(err)
}

func describe(def string, msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return def
	}
	if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + " (" + def + ")"
	}
	return fmt.Sprint(msgAndArgs...) + " (" + def + ")"
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
