//go:build linux

package venv

import (
	"os"
	"syscall"
	"time"
)

func statTimes(fi os.FileInfo) (accessed, created time.Time) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec), time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return fi.ModTime(), fi.ModTime()
}
