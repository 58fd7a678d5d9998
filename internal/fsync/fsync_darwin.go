//go:build darwin

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// Datasync flushes file data to durable storage.
//
// macOS has no fdatasync; regular fsync only reaches the drive cache. When
// fullfsync is set, F_FULLFSYNC forces the write through to the platter for
// power-loss durability.
func Datasync(f *os.File, fullfsync bool) error {
	fd := int(f.Fd())
	if fullfsync {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
