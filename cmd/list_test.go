package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xctestgo/internal/engine"
)

func TestListCmd_HumanTableListsEveryMethod(t *testing.T) {
	entries := smokeEntries(map[string]func(c *engine.Case) error{
		"testOne": func(c *engine.Case) error { return nil },
		"testTwo": func(c *engine.Case) error { return nil },
	})
	root := NewRootCmd("Smoke", entries, "1.0.0")
	root.SetArgs([]string{"list"})
	var buf bytes.Buffer
	root.SetOut(&buf)

	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "SmokeTests.testOne")
	assert.Contains(t, out, "SmokeTests.testTwo")
}

func TestListCmd_JSONProducesParseableTree(t *testing.T) {
	entries := smokeEntries(map[string]func(c *engine.Case) error{
		"testOne": func(c *engine.Case) error { return nil },
	})
	root := NewRootCmd("Smoke", entries, "1.0.0")
	root.SetArgs([]string{"list", "--json"})
	var buf bytes.Buffer
	root.SetOut(&buf)

	require.NoError(t, root.Execute())

	var tree map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	assert.Equal(t, "All tests", tree["name"])
}
