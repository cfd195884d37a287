package venv

import (
	"path/filepath"
	"time"
)

// Activity windows. A venv counts as active when any one heuristic fires.
const (
	activateWindow  = 24 * time.Hour
	installerWindow = 7 * 24 * time.Hour
	markerWindow    = 30 * 24 * time.Hour
)

// projectMarkers are IDE/project entries whose recent modification suggests
// the venv still belongs to a live project.
var projectMarkers = []string{".project", ".vscode", ".idea"}

// IsActive reports whether the venv at path shows signs of recent use.
//
// Three heuristics are checked in order, first hit wins: an activation
// script accessed within 24 hours, an installer binary accessed within
// 7 days, or a project marker modified within 30 days. A missing file or
// stat failure makes that check false, never an error.
func IsActive(path string, p Profile) bool {
	return isActiveAt(path, p, time.Now())
}

func isActiveAt(path string, p Profile, now time.Time) bool {
	for _, script := range p.ActivateScripts {
		at := accessTime(filepath.Join(path, p.BinDir, script))
		if !at.IsZero() && now.Sub(at) < activateWindow {
			return true
		}
	}

	for _, installer := range p.Installers {
		at := accessTime(filepath.Join(path, p.BinDir, installer))
		if !at.IsZero() && now.Sub(at) < installerWindow {
			return true
		}
	}

	for _, marker := range projectMarkers {
		mt := modTime(filepath.Join(path, marker))
		if !mt.IsZero() && now.Sub(mt) < markerWindow {
			return true
		}
	}

	return false
}
