// Package scanner discovers uv virtual environments under configured search
// roots with a depth-limited recursive walk.
package scanner

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/uvprune/internal/venv"
)

// DefaultExcludeDirs are directory names skipped during the walk when the
// caller supplies no exclusion set: version-control metadata, dependency
// caches, bytecode caches, and editor config directories.
var DefaultExcludeDirs = []string{
	".git", "node_modules", "__pycache__", ".pytest_cache", ".vscode", ".idea",
}

// Scanner walks directory trees looking for managed environments.
type Scanner struct {
	profile venv.Profile
	log     *slog.Logger
}

// New creates a Scanner using the given platform profile and logger.
func New(profile venv.Profile, log *slog.Logger) *Scanner {
	return &Scanner{profile: profile, log: log}
}

// Find returns the environments discovered under baseDir, in stable
// discovery order and free of duplicates.
//
// The walk never descends into a discovered environment (its bin/lib layout
// would read as nested environments), honors excludeDirs by name, and
// decrements maxDepth once per directory level; a depth of 0 yields
// nothing. uv's own storage location (.uv/venvs) is scanned explicitly at
// every visited directory since it is the most common install site. A
// missing baseDir is a warning, not an error, and a permission failure
// prunes only that branch.
func (s *Scanner) Find(baseDir string, maxDepth int, excludeDirs []string) []string {
	if excludeDirs == nil {
		excludeDirs = DefaultExcludeDirs
	}
	excluded := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		excluded[name] = true
	}

	if _, err := os.Stat(baseDir); err != nil {
		s.log.Warn("directory not found", "path", baseDir)
		return nil
	}

	seen := make(map[string]bool)
	var found []string
	collect := func(path string) {
		if !seen[path] {
			seen[path] = true
			found = append(found, path)
		}
	}

	s.walk(baseDir, maxDepth, excluded, collect)
	return found
}

func (s *Scanner) walk(dir string, depth int, excluded map[string]bool, collect func(string)) {
	if depth <= 0 {
		s.log.Debug("max depth reached", "path", dir)
		return
	}

	if venv.IsEnv(dir, s.profile) {
		collect(dir)
		return
	}

	// uv keeps shared environments two levels down (.uv/venvs/<name>);
	// check them explicitly at every visited directory so they are found
	// even when the remaining depth would not reach them. Dedup in collect
	// absorbs the overlap with the general walk.
	cacheDir := filepath.Join(dir, venv.CacheRelPath)
	if entries, err := os.ReadDir(cacheDir); err == nil {
		s.log.Debug("scanning uv venvs directory", "path", cacheDir)
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := filepath.Join(cacheDir, entry.Name())
			if venv.IsEnv(child, s.profile) {
				collect(child)
			}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("cannot scan directory", "path", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || excluded[entry.Name()] {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		if venv.IsEnv(child, s.profile) {
			collect(child)
			continue
		}
		s.walk(child, depth-1, excluded, collect)
	}
}
