package venv

import "path/filepath"

// FilterPaths drops every path matching any of the shell-glob patterns.
// Patterns match against the full path. An empty pattern list is a no-op;
// malformed patterns never match.
func FilterPaths(paths []string, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}

	filtered := make([]string, 0, len(paths))
	for _, path := range paths {
		skip := false
		for _, pattern := range patterns {
			if ok, err := filepath.Match(pattern, path); err == nil && ok {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, path)
		}
	}
	return filtered
}
