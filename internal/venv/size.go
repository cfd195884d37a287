package venv

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the total size in bytes of all regular files under path.
// Symlinks are not followed, and files or directories that vanish or deny
// permission mid-walk are skipped; the result is whatever partial sum was
// accumulated, never an error.
func DirSize(path string) int64 {
	var total int64

	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})

	return total
}
