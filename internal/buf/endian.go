// Package buf contains endian-safe encoding helpers and overflow-safe
// arithmetic shared by the storage layer.
package buf

import "encoding/binary"

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// PutU64BE writes v as a big-endian uint64 into b. No-op when b is too short.
func PutU64BE(b []byte, v uint64) {
	if len(b) < 8 {
		return
	}
	binary.BigEndian.PutUint64(b, v)
}
