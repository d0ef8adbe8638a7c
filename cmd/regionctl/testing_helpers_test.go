package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	replaySize, replayInto, replayZero, replayStrict = "64KiB", "", false, false
	createSize = ""
	inspectVerify, inspectHeaders = false, false
}

// writeTrace writes a trace into a temporary file and returns its path.
func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.trace")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}
