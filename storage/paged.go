package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/joshuapare/pagedstore/internal/buf"
	"github.com/joshuapare/pagedstore/internal/fsync"
)

// PagedStorage provides byte-addressed primitive and raw-range access over a
// single file, partitioned into fixed-size pages held in a bounded in-memory
// table. Pages are loaded on first touch and evicted least-recently-used,
// with dirty pages written back before eviction.
//
// Page-table access is internally synchronized, so plain reads and writes
// from multiple goroutines need no external locking. Structural mutation
// (Resize) must be scoped by the shared LockContext; see Resize.
type PagedStorage struct {
	f        *os.File
	path     string
	pageSize int64
	maxPages int
	order    binary.ByteOrder
	aligned  bool
	lock     *LockContext

	mu     sync.Mutex // guards everything below
	pages  map[int64]*page
	lru    lruList
	size   int64 // physical file size
	dirty  bool
	closed bool
}

// OpenPaged opens the file at path, creating it (and its parent directories)
// when absent. The physical size starts at the current file length; use
// Resize to change it.
func OpenPaged(path string, cfg Config) (*PagedStorage, error) {
	cfg = cfg.withDefaults()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create parent dirs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage: stat %s: %w", path, err)
	}
	return &PagedStorage{
		f:        f,
		path:     path,
		pageSize: int64(cfg.PageSize),
		maxPages: cfg.MaxPages,
		order:    cfg.byteOrder(),
		aligned:  cfg.ValuesAligned,
		lock:     cfg.Lock,
		pages:    make(map[int64]*page),
		size:     st.Size(),
	}, nil
}

// Lock acquires the shared structural lock. It scopes check-then-grow
// sequences across instances sharing one LockContext.
func (s *PagedStorage) Lock() { s.lock.Lock() }

// Unlock releases the shared structural lock.
func (s *PagedStorage) Unlock() { s.lock.Unlock() }

// Length returns the current physical size of the backing file.
func (s *PagedStorage) Length() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// File returns the path to the backing file.
func (s *PagedStorage) File() string { return s.path }

// PageSize returns the mapping granularity in bytes.
func (s *PagedStorage) PageSize() int { return int(s.pageSize) }

// IsDirty reports whether any page holds unflushed writes.
func (s *PagedStorage) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// GetByte reads the byte at off.
func (s *PagedStorage) GetByte(off int64) (byte, error) {
	var b [1]byte
	if err := s.getScalar(off, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// PutByte writes v at off.
func (s *PagedStorage) PutByte(off int64, v byte) error {
	b := [1]byte{v}
	return s.putScalar(off, b[:])
}

// GetUint16 reads a 16-bit value at off in the configured byte order.
func (s *PagedStorage) GetUint16(off int64) (uint16, error) {
	var b [2]byte
	if err := s.getScalar(off, b[:]); err != nil {
		return 0, err
	}
	return s.order.Uint16(b[:]), nil
}

// PutUint16 writes a 16-bit value at off in the configured byte order.
func (s *PagedStorage) PutUint16(off int64, v uint16) error {
	var b [2]byte
	s.order.PutUint16(b[:], v)
	return s.putScalar(off, b[:])
}

// GetUint32 reads a 32-bit value at off in the configured byte order.
func (s *PagedStorage) GetUint32(off int64) (uint32, error) {
	var b [4]byte
	if err := s.getScalar(off, b[:]); err != nil {
		return 0, err
	}
	return s.order.Uint32(b[:]), nil
}

// PutUint32 writes a 32-bit value at off in the configured byte order.
func (s *PagedStorage) PutUint32(off int64, v uint32) error {
	var b [4]byte
	s.order.PutUint32(b[:], v)
	return s.putScalar(off, b[:])
}

// GetUint64 reads a 64-bit value at off in the configured byte order.
func (s *PagedStorage) GetUint64(off int64) (uint64, error) {
	var b [8]byte
	if err := s.getScalar(off, b[:]); err != nil {
		return 0, err
	}
	return s.order.Uint64(b[:]), nil
}

// PutUint64 writes a 64-bit value at off in the configured byte order.
func (s *PagedStorage) PutUint64(off int64, v uint64) error {
	var b [8]byte
	s.order.PutUint64(b[:], v)
	return s.putScalar(off, b[:])
}

// Get copies len(dst) bytes starting at off into dst, crossing page
// boundaries transparently.
func (s *PagedStorage) Get(off int64, dst []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessLocked(off, dst, false, false)
}

// Put copies src into the storage starting at off, crossing page boundaries
// transparently. The range must lie inside the current physical size.
func (s *PagedStorage) Put(off int64, src []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessLocked(off, src, true, false)
}

// Resize grows or truncates the physical file to exactly n bytes. Extension
// zero-fills; truncation drops buffered pages beyond the new bound. The
// caller must hold the LockContext around the surrounding check-then-grow
// sequence.
func (s *PagedStorage) Resize(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrGrowFailed, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if n == s.size {
		return nil
	}
	// Write dirty pages back before the table is dropped so no buffered
	// write is lost across the resize.
	for _, pg := range s.pages {
		if pg.dirty {
			if err := s.writePageLocked(pg); err != nil {
				return fmt.Errorf("%w: flush before resize: %v", ErrGrowFailed, err)
			}
		}
	}
	s.pages = make(map[int64]*page)
	s.lru.reset()
	if err := s.f.Truncate(n); err != nil {
		return fmt.Errorf("%w: truncate to %d: %v", ErrGrowFailed, n, err)
	}
	s.size = n
	return nil
}

// Force writes all dirty pages back and syncs the file to durable storage.
func (s *PagedStorage) Force() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forceLocked()
}

// Close flushes and releases all pages and closes the backing file.
// Closing a closed storage is a no-op.
func (s *PagedStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	flushErr := s.forceLocked()
	s.pages = nil
	s.lru.reset()
	s.closed = true
	closeErr := s.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (s *PagedStorage) getScalar(off int64, b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessLocked(off, b, false, true)
}

func (s *PagedStorage) putScalar(off int64, b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessLocked(off, b, true, true)
}

// accessLocked copies between b and the page table starting at off.
// Scalar accesses respect the alignment flag; raw ranges always split
// across pages.
func (s *PagedStorage) accessLocked(off int64, b []byte, write, scalar bool) error {
	if s.closed {
		return ErrClosed
	}
	if _, ok := buf.CheckRange(s.size, off, int64(len(b))); !ok {
		return fmt.Errorf("%w: offset %d length %d physical size %d",
			ErrOutOfBounds, off, len(b), s.size)
	}
	if len(b) == 0 {
		return nil
	}
	if scalar && s.aligned && off%s.pageSize+int64(len(b)) > s.pageSize {
		return fmt.Errorf("%w: offset %d width %d page size %d",
			ErrUnalignedAccess, off, len(b), s.pageSize)
	}
	for len(b) > 0 {
		pg, err := s.pageLocked(off / s.pageSize)
		if err != nil {
			return err
		}
		in := off % s.pageSize
		n := s.pageSize - in
		if n > int64(len(b)) {
			n = int64(len(b))
		}
		if write {
			copy(pg.buf[in:in+n], b[:n])
			pg.dirty = true
			s.dirty = true
		} else {
			copy(b[:n], pg.buf[in:in+n])
		}
		off += n
		b = b[n:]
	}
	return nil
}

// pageLocked returns the page with the given index, loading it from the file
// on first touch and evicting the least recently used page when the table is
// over capacity.
func (s *PagedStorage) pageLocked(index int64) (*page, error) {
	if pg, ok := s.pages[index]; ok {
		s.lru.touch(pg)
		return pg, nil
	}
	pg := &page{index: index, buf: make([]byte, s.pageSize)}
	start := index * s.pageSize
	if start < s.size {
		n := s.size - start
		if n > s.pageSize {
			n = s.pageSize
		}
		// A short read past EOF leaves the tail zero-filled, matching
		// what Truncate-extension would have produced.
		if _, err := s.f.ReadAt(pg.buf[:n], start); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("storage: read page %d: %w", index, err)
		}
	}
	s.pages[index] = pg
	s.lru.pushFront(pg)
	if len(s.pages) > s.maxPages {
		if err := s.evictLocked(); err != nil {
			return nil, err
		}
	}
	return pg, nil
}

func (s *PagedStorage) evictLocked() error {
	victim := s.lru.tail
	if victim == nil {
		return nil
	}
	if victim.dirty {
		if err := s.writePageLocked(victim); err != nil {
			return err
		}
	}
	s.lru.remove(victim)
	delete(s.pages, victim.index)
	return nil
}

// writePageLocked writes a page's buffer back, clamped to the physical size
// so a write-back can never re-extend a truncated file.
func (s *PagedStorage) writePageLocked(pg *page) error {
	start := pg.index * s.pageSize
	n := s.size - start
	if n <= 0 {
		pg.dirty = false
		return nil
	}
	if n > s.pageSize {
		n = s.pageSize
	}
	if _, err := s.f.WriteAt(pg.buf[:n], start); err != nil {
		return fmt.Errorf("storage: write page %d: %w", pg.index, err)
	}
	pg.dirty = false
	return nil
}

func (s *PagedStorage) forceLocked() error {
	if s.closed {
		return ErrClosed
	}
	if !s.dirty {
		return nil
	}
	for _, pg := range s.pages {
		if pg.dirty {
			if err := s.writePageLocked(pg); err != nil {
				return err
			}
		}
	}
	if err := fsync.Datasync(s.f, false); err != nil {
		return fmt.Errorf("storage: datasync %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
