package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommandStructure(t *testing.T) {
	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotEmpty(t, versionCmd.Short)
	assert.NotEmpty(t, versionCmd.Long)
	assert.NotNil(t, versionCmd.Run)
}

func TestRunVersion(t *testing.T) {
	originalVersion := Version
	originalCommit := Commit
	defer func() {
		Version = originalVersion
		Commit = originalCommit
	}()

	Version = "1.2.0"
	Commit = "abc123def456"

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	runVersion(versionCmd, nil)

	output := buf.String()
	assert.Contains(t, output, "discbot version 1.2.0")
	assert.Contains(t, output, "Commit: abc123def456")
	assert.Contains(t, output, "Go version: "+runtime.Version())
	assert.Contains(t, output, "OS/Arch: "+runtime.GOOS+"/"+runtime.GOARCH)
}
