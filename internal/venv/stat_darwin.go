//go:build darwin

package venv

import (
	"os"
	"syscall"
	"time"
)

func statTimes(fi os.FileInfo) (accessed, created time.Time) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
			time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return fi.ModTime(), fi.ModTime()
}
