package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newVersionCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "guardscope version")
}

func TestBuildSetting_AbsentKey(t *testing.T) {
	info := &debug.BuildInfo{}
	assert.Empty(t, buildSetting(info, "vcs.revision"))

	info.Settings = []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}
	assert.Equal(t, "abc123", buildSetting(info, "vcs.revision"))
}
