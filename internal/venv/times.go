package venv

import (
	"os"
	"time"
)

// Times holds the filesystem timestamps of a path. Created is best-effort:
// on Linux it is the inode change time, not true creation time.
type Times struct {
	Accessed time.Time
	Modified time.Time
	Created  time.Time
}

// Stat returns the access, modification and creation timestamps for path.
func Stat(path string) (Times, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	accessed, created := statTimes(fi)
	return Times{Accessed: accessed, Modified: fi.ModTime(), Created: created}, nil
}

// accessTime returns the last access time of path, or the zero time if the
// path cannot be stat'd.
func accessTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	accessed, _ := statTimes(fi)
	return accessed
}

// modTime returns the last modification time of path, or the zero time if
// the path cannot be stat'd.
func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
