package venv

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigFile is the standard virtualenv config file at the env root.
	ConfigFile = "pyvenv.cfg"

	// MarkerFile is the uv project marker occasionally left at the env root.
	MarkerFile = ".uv-proj"

	// toolMarker is the substring that identifies a uv-managed env inside
	// pyvenv.cfg (matched case-insensitively).
	toolMarker = "uv"
)

// CacheRelPath is the relative location under a search root where uv keeps
// its shared environments.
var CacheRelPath = filepath.Join(".uv", "venvs")

// IsEnv reports whether path looks like a uv-managed virtual environment.
//
// The checks run in order of specificity: structural layout first (at least
// two of the three canonical subdirectories must exist), then the uv marker
// in pyvenv.cfg, then the interpreter combined with a marker file, and
// finally a permissive structural fallback. The fallback means any directory
// with an interpreter and a venv-shaped layout is treated as removable even
// without a uv marker; that matches observed uv behavior and is deliberately
// not tightened here.
//
// Detection never fails: any I/O error resolves to false.
func IsEnv(path string, p Profile) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return false
	}

	found := 0
	for _, dir := range p.CanonicalDirs() {
		if isDir(filepath.Join(path, dir)) {
			found++
		}
	}
	if found < 2 {
		return false
	}

	cfgPath := filepath.Join(path, ConfigFile)
	hasCfg := isFile(cfgPath)
	if hasCfg {
		if data, err := os.ReadFile(cfgPath); err == nil {
			if strings.Contains(strings.ToLower(string(data)), toolMarker) {
				return true
			}
		}
	}

	hasPython := isFile(filepath.Join(path, p.BinDir, p.Python))
	hasMarker := isFile(filepath.Join(path, MarkerFile))

	if hasPython && (hasMarker || hasCfg) {
		return true
	}

	// Permissive fallback: interpreter plus venv-shaped layout.
	return hasPython
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
