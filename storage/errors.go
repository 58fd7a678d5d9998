package storage

import "errors"

// Sentinel errors double as error classes: callers decide between retrying,
// discarding the instance, or ignoring a degraded flush via errors.Is.
var (
	// ErrAddressSpace indicates an offset beyond the 32-bit address ceiling.
	// Fatal: the instance cannot represent the offset and must be discarded.
	ErrAddressSpace = errors.New("storage: address space limit exceeded")

	// ErrGrowFailed indicates the physical file could not be resized.
	// Structural: the write that triggered growth was not applied.
	ErrGrowFailed = errors.New("storage: resize failed")

	// ErrMetadataIO indicates the sidecar length file could not be written.
	// Best-effort: flushes proceed without it and the length is recovered
	// from the physical size at next open.
	ErrMetadataIO = errors.New("storage: sidecar metadata write failed")

	// ErrOutOfBounds indicates an access past the current physical size.
	ErrOutOfBounds = errors.New("storage: access beyond physical size")

	// ErrUnalignedAccess indicates a scalar access spanning a page boundary
	// while the storage was configured with aligned values.
	ErrUnalignedAccess = errors.New("storage: value spans a page boundary")

	// ErrClosed indicates an operation on a closed storage.
	ErrClosed = errors.New("storage: closed")
)
