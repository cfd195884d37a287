//go:build windows

package watcher

import "fmt"

// Daemonizing relies on session creation (Setsid), which Windows does not
// have. The foreground watcher still works there.

var errDaemonUnsupported = fmt.Errorf("background watcher is not supported on Windows; run 'uvprune watch' in the foreground")

func StartDaemon(pidFile, logFile string, extraArgs ...string) error {
	return errDaemonUnsupported
}

func (w *Watcher) RunDaemon(pidFile string, roots []string, maxDepth int) error {
	return errDaemonUnsupported
}

func StopDaemon(pidFile string) error {
	return errDaemonUnsupported
}

func IsDaemonRunning(pidFile string) (bool, error) {
	return false, nil
}
