package venv

import "os"

// Remove recursively deletes the directory tree at path. It reports whether
// the removal fully succeeded; on failure the cause is returned for the
// caller to log. Removing a path that does not exist returns false.
//
// Removal is best-effort and not transactional: a failure partway through
// may leave the tree partially deleted.
func Remove(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return false, err
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}
