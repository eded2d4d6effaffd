//go:build !linux

package local

import (
	"io/fs"
	"time"
)

func changeTime(fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
