//go:build !windows

package watcher

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDaemonRunning(t *testing.T) {
	dir := t.TempDir()

	running, err := IsDaemonRunning(filepath.Join(dir, "absent.pid"))
	require.NoError(t, err)
	assert.False(t, running)

	// Garbage PID content reads as not running.
	bad := filepath.Join(dir, "bad.pid")
	require.NoError(t, os.WriteFile(bad, []byte("not-a-pid\n"), 0o644))
	running, err = IsDaemonRunning(bad)
	require.NoError(t, err)
	assert.False(t, running)

	// Our own PID is alive.
	own := filepath.Join(dir, "own.pid")
	require.NoError(t, os.WriteFile(own, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644))
	running, err = IsDaemonRunning(own)
	require.NoError(t, err)
	assert.True(t, running)
}
