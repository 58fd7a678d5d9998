package storage

import (
	"encoding/binary"
	"io"
	"log/slog"
)

const (
	// DefaultPageSize is used when Config.PageSize is zero or negative.
	DefaultPageSize = 4096

	// DefaultMaxPages bounds the number of pages held in memory at once.
	DefaultMaxPages = 64
)

// Config carries the construction parameters for a storage instance.
// The zero value selects the defaults.
type Config struct {
	// PageSize is the mapping granularity in bytes. Zero or negative
	// selects DefaultPageSize.
	PageSize int

	// MaxPages caps the in-memory page table. Zero or negative selects
	// DefaultMaxPages. Evicted dirty pages are written back first.
	MaxPages int

	// ValuesAligned rejects scalar accesses that would span two pages
	// instead of splitting them. Callers that lay out their records on
	// aligned offsets get single-copy accesses and an error on a layout
	// bug rather than a silent slow path.
	ValuesAligned bool

	// NativeByteOrder selects the host byte order for multi-byte scalars.
	// The default is fixed big-endian, which keeps files portable across
	// hosts.
	NativeByteOrder bool

	// Lock is the shared structural lock context. Nil allocates a private
	// one.
	Lock *LockContext

	// Logger receives warnings from best-effort paths (sidecar metadata
	// writes). Nil discards them.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.Lock == nil {
		c.Lock = NewLockContext()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func (c Config) byteOrder() binary.ByteOrder {
	if c.NativeByteOrder {
		return binary.NativeEndian
	}
	return binary.BigEndian
}
