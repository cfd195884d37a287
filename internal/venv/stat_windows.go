//go:build windows

package venv

import (
	"os"
	"syscall"
	"time"
)

func statTimes(fi os.FileInfo) (accessed, created time.Time) {
	if st, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, st.LastAccessTime.Nanoseconds()),
			time.Unix(0, st.CreationTime.Nanoseconds())
	}
	return fi.ModTime(), fi.ModTime()
}
