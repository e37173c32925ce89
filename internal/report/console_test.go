package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xctestgo/internal/classify"
	"xctestgo/internal/result"
)

func TestConsoleObserver_FailureLineFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleObserver(&buf)

	c.CaseDidFail("A.t1", `("1") is not equal to ("2")`, classify.SourceLocation{File: "a_test.go", Line: 10}, true)

	assert.Equal(t, `a_test.go:10: error: A.t1 : ("1") is not equal to ("2")`+"\n", buf.String())
}

func TestConsoleObserver_SkipLineFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleObserver(&buf)

	c.CaseWasSkipped("A.t1", "needs net", classify.SourceLocation{File: "a_test.go", Line: 5})

	assert.Equal(t, "a_test.go:5: A.t1 : needs net\n", buf.String())
}

func TestConsoleObserver_SummaryLineFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleObserver(&buf)

	c.BundleWillStart("MyTests")

	record := result.NewComposite()

	c.BundleDidFinish("MyTests", record)

	require.True(t, strings.HasPrefix(buf.String(), "Executed 0 test(s), with 0 test(s) skipped and 0 failure(s) (0 unexpected) in"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "seconds"))
}
