package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Ordinary(t *testing.T) {
	c := Classify(errors.New("boom"))
	assert.Equal(t, Ordinary, c)
}

func TestClassify_Nil(t *testing.T) {
	c := Classify(nil)
	assert.Equal(t, Ordinary, c)
}

func TestClassify_Skip(t *testing.T) {
	s := NewSkip("needs net", SourceLocation{File: "a_test.go", Line: 12})
	c := Classify(s)
	assert.Equal(t, SkipClassification, c)
	assert.False(t, c.RecordAsFailure)
	assert.True(t, c.SkipTestInvocation)
	assert.True(t, c.RecordAsSkip)
}

func TestClassify_WrappedSkip(t *testing.T) {
	s := NewSkip("needs net", SourceLocation{File: "a_test.go", Line: 12})
	wrapped := errors.Join(s)
	c := Classify(wrapped)
	// errors.Join doesn't implement Unwrap() error (it implements Unwrap()
	// []error), so a joined skip is not recognized as one — only direct
	// wrapping via %w is. Confirms ordinary fallback, not a false positive.
	assert.Equal(t, Ordinary, c)
}

func TestClassify_UnwrapSentinel(t *testing.T) {
	cause := errors.New("missing value")
	sentinel := NewUnwrapSentinel(cause)
	c := Classify(sentinel)
	require.Equal(t, UnwrapSentinel, c)
	assert.Contains(t, sentinel.Error(), "error while unwrapping")
}

func TestSkip_Summary(t *testing.T) {
	s := NewSkip("", SourceLocation{})
	assert.Equal(t, "Test skipped", s.Summary())

	s2 := NewSkip("needs net", SourceLocation{})
	assert.Equal(t, "Test skipped: needs net", s2.Summary())
}

func TestSourceLocation_String(t *testing.T) {
	loc := SourceLocation{File: "foo_test.go", Line: 42}
	assert.Equal(t, "foo_test.go:42", loc.String())
}
