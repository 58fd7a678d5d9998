// Package fsync hides the platform differences in forcing file contents to
// durable storage (fdatasync on Linux/FreeBSD, fsync or F_FULLFSYNC on
// macOS, FlushFileBuffers on Windows).
package fsync
