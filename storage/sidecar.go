package storage

import (
	"fmt"
	"os"

	"github.com/joshuapare/pagedstore/internal/buf"
)

// SidecarSuffix is appended to the data file path to form the sidecar path.
// The sidecar holds a single big-endian uint64: the logical length at the
// last flush.
const SidecarSuffix = ".len"

// sidecarWriteAttempts bounds the retry loop around the sidecar write. One
// retry absorbs a transient failure to open the file; this is not a general
// retry policy.
const sidecarWriteAttempts = 2

func (g *Growable) sidecarPath() string { return g.storage.File() + SidecarSuffix }

// writeSidecar persists n as the logical length. Failures are logged and
// swallowed: losing the sidecar only costs a fallback to the physical size
// at the next open, not data loss.
func (g *Growable) writeSidecar(n int64) {
	var b [8]byte
	buf.PutU64BE(b[:], uint64(n))
	var err error
	for attempt := 0; attempt < sidecarWriteAttempts; attempt++ {
		if err = os.WriteFile(g.sidecarPath(), b[:], 0o644); err == nil {
			return
		}
	}
	g.logger.Error("sidecar write failed",
		"path", g.sidecarPath(),
		"error", fmt.Errorf("%w: %v", ErrMetadataIO, err))
}

// readSidecar returns the persisted logical length. An absent, short, or
// corrupt sidecar is reconciled idempotently: the logical length falls back
// to the physical size and the sidecar is rewritten with it.
func (g *Growable) readSidecar() int64 {
	data, err := os.ReadFile(g.sidecarPath())
	if err == nil && len(data) >= 8 {
		if n := int64(buf.U64BE(data)); n >= 0 {
			return n
		}
	}
	phys := g.storage.Length()
	g.writeSidecar(phys)
	return phys
}
