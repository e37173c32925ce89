package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelfUpdateCmd_Shape(t *testing.T) {
	selfUpdateCmd := newSelfUpdateCmd()

	assert.Equal(t, "self-update", selfUpdateCmd.Use)
	assert.NotEmpty(t, selfUpdateCmd.Short)
	assert.NotEmpty(t, selfUpdateCmd.Long)
	assert.NotNil(t, selfUpdateCmd.RunE)
}

func TestRunSelfUpdate_RejectsDevVersion(t *testing.T) {
	root := NewRootCmd("Smoke", nil, "dev")
	root.SetArgs([]string{"self-update"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot self-update a development version")
}

func TestRunSelfUpdate_RejectsEmptyVersion(t *testing.T) {
	root := NewRootCmd("Smoke", nil, "")
	root.SetArgs([]string{"self-update"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot self-update a development version")
}

func TestSelfUpdateCommandHelp(t *testing.T) {
	root := NewRootCmd("Smoke", nil, "1.0.0")
	root.SetArgs([]string{"self-update", "--help"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)

	require.NoError(t, root.Execute())

	output := buf.String()
	assert.True(t, strings.Contains(output, "Checks for the latest release"))
	assert.True(t, strings.Contains(output, "self-update"))
}

func TestGithubRepoSlug(t *testing.T) {
	assert.Equal(t, "xctestgo/xctestgo", githubRepoSlug)
}
