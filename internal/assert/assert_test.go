package assert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"xctestgo/internal/activecase"
	"xctestgo/internal/classify"
)

type fakeRecorder struct {
	failures []string
}

func (f *fakeRecorder) RecordFailure(description string, location classify.SourceLocation, expected bool) {
	f.failures = append(f.failures, description)
}

func withActiveCase(t *testing.T) *fakeRecorder {
	t.Helper()
	r := &fakeRecorder{}
	activecase.Set(r)
	t.Cleanup(activecase.Clear)
	return r
}

func loc() classify.SourceLocation {
	return classify.SourceLocation{File: "assert_test.go", Line: 1}
}

func TestTrue_PassesSilently(t *testing.T) {
	r := withActiveCase(t)
	True(true, loc())
	require.Empty(t, r.failures)
}

func TestTrue_RecordsFailure(t *testing.T) {
	r := withActiveCase(t)
	True(false, loc())
	require.Len(t, r.failures, 1)
}

func TestEqual_DeepEquality(t *testing.T) {
	r := withActiveCase(t)
	Equal([]int{1, 2}, []int{1, 2}, loc())
	require.Empty(t, r.failures)

	Equal([]int{1, 2}, []int{1, 3}, loc())
	require.Len(t, r.failures, 1)
}

func TestEqual_FailureDescriptionIsCanonicalForm(t *testing.T) {
	r := withActiveCase(t)
	Equal(1, 2, loc())
	require.Len(t, r.failures, 1)
	require.Equal(t, `("1") is not equal to ("2")`, r.failures[0])
}

func TestNil_RecognizesTypedNil(t *testing.T) {
	r := withActiveCase(t)
	var p *int
	Nil(p, loc())
	require.Empty(t, r.failures)

	NotNil(p, loc())
	require.Len(t, r.failures, 1)
}

func TestEqualWithAccuracy_WithinTolerance(t *testing.T) {
	r := withActiveCase(t)
	EqualWithAccuracy(1.0, 1.0001, 0.001, loc())
	require.Empty(t, r.failures)

	EqualWithAccuracy(1.0, 1.1, 0.001, loc())
	require.Len(t, r.failures, 1)
}

func TestEqualWithAccuracy_InfinityComparesEqual(t *testing.T) {
	r := withActiveCase(t)
	inf := 1.0
	for i := 0; i < 400; i++ {
		inf *= 10
	}
	EqualWithAccuracy(inf, inf, 0, loc())
	require.Empty(t, r.failures)
}

func TestNoThrow_PassesOnNil(t *testing.T) {
	r := withActiveCase(t)
	NoThrow(nil, loc())
	require.Empty(t, r.failures)
}

func TestNoThrow_FailsOnError(t *testing.T) {
	r := withActiveCase(t)
	NoThrow(errors.New("boom"), loc())
	require.Len(t, r.failures, 1)
}

func TestUnwrap_PropagatesSentinelOnError(t *testing.T) {
	r := withActiveCase(t)
	cause := errors.New("boom")
	_, err := Unwrap(0, cause, loc())
	require.Error(t, err)
	require.Len(t, r.failures, 1)
	require.Equal(t, classify.UnwrapSentinel, classify.Classify(err))
}

func TestUnwrap_PassesThroughValueOnSuccess(t *testing.T) {
	r := withActiveCase(t)
	v, err := Unwrap(42, nil, loc())
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Empty(t, r.failures)
}

func TestEvaluate_SilentlyDropsWithoutActiveCase(t *testing.T) {
	activecase.Clear()
	require.NotPanics(t, func() {
		True(false, loc())
	})
}
