//go:build !linux && !freebsd && !darwin && !windows

package fsync

import "os"

// Datasync flushes file data to durable storage via plain fsync.
func Datasync(f *os.File, _ bool) error {
	return f.Sync()
}
