//go:build linux || freebsd

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// Datasync flushes file data to durable storage.
//
// On Linux and FreeBSD, fdatasync() provides sufficient guarantees.
// The fullfsync parameter is ignored here.
func Datasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
