//go:build windows

package fsync

import (
	"os"

	"golang.org/x/sys/windows"
)

// Datasync flushes file data to durable storage.
//
// On Windows, FlushFileBuffers writes all file data and metadata to disk.
// The fullfsync parameter is ignored here.
func Datasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
