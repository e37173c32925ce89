package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xctestgo/internal/engine"
	"xctestgo/internal/registration"
)

func smokeEntries(bodies map[string]func(c *engine.Case) error) []registration.Entry {
	methods := make([]registration.ClassBody, 0, len(bodies))
	for name, body := range bodies {
		methods = append(methods, registration.ClassBody{MethodName: name, Body: body})
	}
	return []registration.Entry{{Class: registration.ClassHandle{Name: "SmokeTests", Methods: methods}}}
}

func TestExecute_RunAllPassingReturnsZero(t *testing.T) {
	entries := smokeEntries(map[string]func(c *engine.Case) error{
		"testOne": func(c *engine.Case) error { return nil },
	})
	root := NewRootCmd("Smoke", entries, "1.0.0")
	root.SetArgs([]string{"run"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	code := Execute(root)
	assert.Equal(t, 0, code)
}

func TestExecute_RunWithFailureReturnsOne(t *testing.T) {
	entries := smokeEntries(map[string]func(c *engine.Case) error{
		"testFails": func(c *engine.Case) error { return errBoom{} },
	})
	root := NewRootCmd("Smoke", entries, "1.0.0")
	root.SetArgs([]string{"run"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	code := Execute(root)
	assert.Equal(t, 1, code)
}

func TestExecute_UnknownSubcommandReturnsOne(t *testing.T) {
	root := NewRootCmd("Smoke", nil, "1.0.0")
	root.SetArgs([]string{"bogus"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	code := Execute(root)
	assert.Equal(t, 1, code)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	root := NewRootCmd("Smoke", nil, "1.2.3")
	root.SetArgs([]string{"version"})
	var buf bytes.Buffer
	root.SetOut(&buf)

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "1.2.3")
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
