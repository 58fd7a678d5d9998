// Package storage implements a growable, page-backed binary store over a
// single file.
//
// # Layers
//
// Two types make up the package, in dependency order:
//
//   - PagedStorage: byte-addressed primitive and raw-range access over a
//     file, partitioned into fixed-size pages with a bounded in-memory page
//     table, dirty tracking, an explicit Resize, and Force (flush to
//     durable storage).
//   - Growable: wraps a PagedStorage with a logical length decoupled from
//     the physical file size, lazy exponential growth on out-of-bounds
//     writes, and persistence of the logical length in a ".len" sidecar
//     file next to the data file.
//
// # Usage
//
//	g, err := storage.Open("index.dat", 0, storage.Config{})
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	if err := g.PutUint32(1_000_000, 0x11223344); err != nil {
//	    return err
//	}
//	// g.Length() == 1_000_004; the file grew through ~1.625x steps.
//
// # On-disk layout
//
// The data file is a flat byte array with no header; its only structure is
// whatever the caller writes at caller-chosen offsets. The sidecar file at
// path+".len" holds one big-endian uint64, the logical length at the last
// flush. An absent or corrupt sidecar is self-healed at open from the
// physical size.
//
// # Concurrency
//
// Multiple goroutines may read and write concurrently; the page table is
// internally synchronized. Growth runs under a storage-wide LockContext
// which may be shared across instances. One Growable exclusively owns its
// PagedStorage and sidecar path.
//
// # Errors
//
// Sentinel errors classify failures for programmatic handling: ErrAddressSpace
// (fatal, discard the instance), ErrGrowFailed (structural, the write was
// not applied), ErrMetadataIO (best-effort sidecar, logged only). See
// errors.go.
package storage
