package venv

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDirs returns the default search roots for uv virtual environments:
// uv's own storage locations first (most likely to contain venvs), then
// generic project directories that may need deeper scanning. Only existing
// directories are returned; order is significant for scan ordering.
func DefaultDirs() []string {
	return defaultDirsFor(runtime.GOOS)
}

func defaultDirsFor(goos string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	var uvDirs []string
	switch goos {
	case "darwin":
		uvDirs = []string{
			filepath.Join(home, ".uv", "venvs"),
			filepath.Join(home, ".local", "share", "uv", "venvs"),
			filepath.Join(home, "Library", "Caches", "uv", "venvs"),
		}
	case "linux":
		uvDirs = []string{
			filepath.Join(home, ".uv", "venvs"),
			filepath.Join(home, ".local", "share", "uv", "venvs"),
			filepath.Join(home, ".cache", "uv", "venvs"),
		}
	case "windows":
		uvDirs = []string{filepath.Join(home, ".uv", "venvs")}
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			uvDirs = append(uvDirs, filepath.Join(appdata, "uv", "venvs"))
		}
	default:
		uvDirs = []string{filepath.Join(home, ".uv", "venvs")}
	}

	projectDirs := []string{
		filepath.Join(home, "projects"),
		filepath.Join(home, "dev"),
		filepath.Join(home, "code"),
		filepath.Join(home, "workspace"),
	}

	var dirs []string
	for _, d := range uvDirs {
		if isDir(d) {
			dirs = append(dirs, d)
		}
	}
	for _, d := range projectDirs {
		if isDir(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
