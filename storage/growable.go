package storage

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/joshuapare/pagedstore/internal/buf"
)

// growthNumerator/growthDenominator give the ~1.625x expansion ratio. It
// amortizes resizes to O(log n) growths while over-allocating less in the
// worst case than doubling would.
const (
	growthNumerator   = 13
	growthDenominator = 8
)

// maxAddress is the hard ceiling of the 32-bit-addressed storage unit.
// Offsets within 16 bytes of it are rejected outright.
const maxAddress = math.MaxInt32

// Growable presents unbounded growth over a PagedStorage. It tracks a
// logical length (the high-water mark of written data) separately from the
// over-allocated physical size, grows the file lazily on out-of-bounds
// writes, and persists the logical length in a sidecar file next to the
// data file.
//
// The logical length is authoritative; the physical file length is merely
// an upper bound on it.
type Growable struct {
	storage *PagedStorage
	logical atomic.Int64
	logger  *slog.Logger
	closed  atomic.Bool
}

// Open opens (creating if needed) a growable storage at path. initialSize is
// the physical allocation made on first creation only; existing files keep
// their size. A missing or unreadable sidecar is reconciled from the
// physical size rather than reported.
func Open(path string, initialSize int64, cfg Config) (*Growable, error) {
	cfg = cfg.withDefaults()
	ps, err := OpenPaged(path, cfg)
	if err != nil {
		return nil, err
	}
	g := &Growable{storage: ps, logger: cfg.Logger}
	if ps.Length() == 0 {
		g.writeSidecar(0)
	}
	g.logical.Store(g.readSidecar())
	if g.logical.Load() == 0 {
		ps.Lock()
		err := ps.Resize(initialSize)
		ps.Unlock()
		if err != nil {
			_ = ps.Close()
			return nil, err
		}
	}
	return g, nil
}

// Length returns the logical length: the highest written offset plus its
// access width. No I/O.
func (g *Growable) Length() int64 { return g.logical.Load() }

// IsDirty reports whether the underlying storage holds unflushed writes.
func (g *Growable) IsDirty() bool { return g.storage.IsDirty() }

// PagedStorage exposes the underlying storage for advanced callers. Growing
// or resizing it directly bypasses logical-length tracking.
func (g *Growable) PagedStorage() *PagedStorage { return g.storage }

// GetByte reads the byte at off. Reads never grow the storage; reading
// between the logical length and the physical size yields whatever the
// storage holds there, typically zeros.
func (g *Growable) GetByte(off int64) (byte, error) { return g.storage.GetByte(off) }

// PutByte writes v at off, growing the storage as needed.
func (g *Growable) PutByte(off int64, v byte) error {
	if err := g.ensure(off, 1); err != nil {
		return err
	}
	return g.storage.PutByte(off, v)
}

// GetUint16 reads a 16-bit value at off.
func (g *Growable) GetUint16(off int64) (uint16, error) { return g.storage.GetUint16(off) }

// PutUint16 writes a 16-bit value at off, growing the storage as needed.
func (g *Growable) PutUint16(off int64, v uint16) error {
	if err := g.ensure(off, 2); err != nil {
		return err
	}
	return g.storage.PutUint16(off, v)
}

// GetUint32 reads a 32-bit value at off.
func (g *Growable) GetUint32(off int64) (uint32, error) { return g.storage.GetUint32(off) }

// PutUint32 writes a 32-bit value at off, growing the storage as needed.
func (g *Growable) PutUint32(off int64, v uint32) error {
	if err := g.ensure(off, 4); err != nil {
		return err
	}
	return g.storage.PutUint32(off, v)
}

// GetUint64 reads a 64-bit value at off.
func (g *Growable) GetUint64(off int64) (uint64, error) { return g.storage.GetUint64(off) }

// PutUint64 writes a 64-bit value at off, growing the storage as needed.
func (g *Growable) PutUint64(off int64, v uint64) error {
	if err := g.ensure(off, 8); err != nil {
		return err
	}
	return g.storage.PutUint64(off, v)
}

// Get copies len(dst) bytes starting at off into dst.
func (g *Growable) Get(off int64, dst []byte) error { return g.storage.Get(off, dst) }

// Put copies src into the storage at off, growing it as needed.
func (g *Growable) Put(off int64, src []byte) error {
	if err := g.ensure(off, int64(len(src))); err != nil {
		return err
	}
	return g.storage.Put(off, src)
}

// Force persists the logical length to the sidecar (best effort, logged on
// failure) and then flushes the underlying storage. A no-op when clean.
func (g *Growable) Force() error {
	if g.storage.IsDirty() {
		g.writeSidecar(g.logical.Load())
	}
	return g.storage.Force()
}

// Close forces and then releases the underlying storage. Release is not
// skipped when the flush fails; the flush error wins when both fail.
func (g *Growable) Close() error {
	if g.closed.Swap(true) {
		return nil
	}
	forceErr := g.Force()
	closeErr := g.storage.Close()
	if forceErr != nil {
		return forceErr
	}
	return closeErr
}

// ensure extends the logical length to cover off+width and grows the
// physical file when the access falls outside it.
func (g *Growable) ensure(off, width int64) error {
	end, ok := buf.AddOverflowSafe(off, width)
	if !ok || off < 0 {
		return fmt.Errorf("%w: offset %d width %d", ErrAddressSpace, off, width)
	}
	return g.ensureCapacity(end)
}

// ensureCapacity guarantees the physical size covers pos. The logical length
// is extended first, unconditionally: a pending logical extension stays
// visible even when the physical growth after it fails.
func (g *Growable) ensureCapacity(pos int64) error {
	if pos+16 > maxAddress {
		return fmt.Errorf("%w: cannot address past %d (requested %d)",
			ErrAddressSpace, int64(maxAddress), pos)
	}
	for {
		cur := g.logical.Load()
		if pos <= cur || g.logical.CompareAndSwap(cur, pos) {
			break
		}
	}
	if pos < g.storage.Length() {
		return nil
	}
	g.storage.Lock()
	defer g.storage.Unlock()
	for pos >= g.storage.Length() {
		next := (g.storage.Length() + 1) * growthNumerator / growthDenominator
		if next > maxAddress {
			next = maxAddress
		}
		if err := g.storage.Resize(next); err != nil {
			return err
		}
	}
	return nil
}
