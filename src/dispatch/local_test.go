package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/illikainen/mirror/src/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTool(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0700)) // #nosec G306
	return path
}

func TestLocalRunnerExitCode(t *testing.T) {
	bin := fakeTool(t, "echo \"$@\"\necho summary\nexit 3\n")
	runner := &LocalRunner{Bin: bin}

	lines, code, err := runner.Run(localTask("data"))
	require.NoError(t, err)

	assert.Equal(t, 3, code)
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "filer")
	assert.Contains(t, lines[0], "/MIR")
}

func TestLocalRunnerSuccess(t *testing.T) {
	bin := fakeTool(t, "exit 0\n")
	runner := &LocalRunner{Bin: bin}

	_, code, err := runner.Run(localTask("data"))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestLocalRunnerMissingBinary(t *testing.T) {
	runner := &LocalRunner{Bin: filepath.Join(t.TempDir(), "does-not-exist")}

	_, _, err := runner.Run(localTask("data"))
	require.Error(t, err)
}

func TestLocalRunnerBadSwitches(t *testing.T) {
	task := &manifest.Task{
		Name: "broken",
		Arguments: &manifest.Arguments{
			Source:      `\\filer\data`,
			Destination: `\\backup\data`,
			Switches:    `"unterminated`,
		},
	}

	runner := &LocalRunner{Bin: "robocopy"}
	_, _, err := runner.Run(task)
	require.Error(t, err)
}

func TestInvocation(t *testing.T) {
	task := &manifest.Task{InputFile: "job.rcj"}
	assert.Equal(t, "job.rcj", Invocation(task).InputFile)

	task = localTask("data")
	inv := Invocation(task)
	assert.Equal(t, `\\filer\data`, inv.Source)
	assert.Equal(t, `\\backup\data`, inv.Destination)
	assert.Equal(t, "/MIR", inv.Switches)
}
