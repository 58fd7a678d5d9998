package storage

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagedstore/internal/testutil"
)

func openPaged(t *testing.T, cfg Config) *PagedStorage {
	t.Helper()
	ps, err := OpenPaged(testutil.ScratchPath(t), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func resize(t *testing.T, ps *PagedStorage, n int64) {
	t.Helper()
	ps.Lock()
	defer ps.Unlock()
	require.NoError(t, ps.Resize(n))
}

func TestPagedStorage_ScalarRoundTrip(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 64*4)

	// One offset inside each of the first three pages.
	for _, off := range []int64{0, 70, 130} {
		require.NoError(t, ps.PutByte(off, 0xAB))
		require.NoError(t, ps.PutUint16(off+8, 0x1234))
		require.NoError(t, ps.PutUint32(off+16, 0xDEADBEEF))
		require.NoError(t, ps.PutUint64(off+24, 0x1122334455667788))

		b, err := ps.GetByte(off)
		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), b)

		v16, err := ps.GetUint16(off + 8)
		require.NoError(t, err)
		assert.Equal(t, uint16(0x1234), v16)

		v32, err := ps.GetUint32(off + 16)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xDEADBEEF), v32)

		v64, err := ps.GetUint64(off + 24)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x1122334455667788), v64)
	}
}

func TestPagedStorage_ScalarCrossesPageBoundary(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 256)

	// Last two bytes of page 0, first two of page 1.
	require.NoError(t, ps.PutUint32(62, 0x11223344))
	v, err := ps.GetUint32(62)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11223344), v)
}

func TestPagedStorage_AlignedRejectsSpanningScalar(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64, ValuesAligned: true})
	resize(t, ps, 256)

	err := ps.PutUint32(62, 1)
	require.ErrorIs(t, err, ErrUnalignedAccess)

	_, err = ps.GetUint64(60)
	require.ErrorIs(t, err, ErrUnalignedAccess)

	// In-page scalars and raw ranges are unaffected.
	require.NoError(t, ps.PutUint32(60, 1))
	require.NoError(t, ps.Put(62, []byte{1, 2, 3, 4}))
}

func TestPagedStorage_RawRangeAcrossPages(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 64*5)

	src := make([]byte, 200)
	for i := range src {
		src[i] = byte(i)
	}
	require.NoError(t, ps.Put(30, src))

	dst := make([]byte, 200)
	require.NoError(t, ps.Get(30, dst))
	assert.Equal(t, src, dst)
}

func TestPagedStorage_OutOfBounds(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 100)

	require.ErrorIs(t, ps.PutUint32(98, 1), ErrOutOfBounds)
	_, err := ps.GetUint64(96)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.ErrorIs(t, ps.Put(90, make([]byte, 11)), ErrOutOfBounds)
	_, err = ps.GetByte(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)

	// The exact end is fine.
	require.NoError(t, ps.PutUint32(96, 1))
}

func TestPagedStorage_ByteOrder(t *testing.T) {
	t.Run("fixed big-endian default", func(t *testing.T) {
		ps := openPaged(t, Config{PageSize: 64})
		resize(t, ps, 64)
		require.NoError(t, ps.PutUint32(0, 0x11223344))
		require.NoError(t, ps.Force())

		raw, err := os.ReadFile(ps.File())
		require.NoError(t, err)
		assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, raw[:4])
	})

	t.Run("native order", func(t *testing.T) {
		ps := openPaged(t, Config{PageSize: 64, NativeByteOrder: true})
		resize(t, ps, 64)
		require.NoError(t, ps.PutUint32(0, 0x11223344))
		require.NoError(t, ps.Force())

		var want [4]byte
		binary.NativeEndian.PutUint32(want[:], 0x11223344)
		raw, err := os.ReadFile(ps.File())
		require.NoError(t, err)
		assert.Equal(t, want[:], raw[:4])
	})
}

func TestPagedStorage_DirtyAndForce(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 64)
	assert.False(t, ps.IsDirty())

	require.NoError(t, ps.PutByte(10, 0x7F))
	assert.True(t, ps.IsDirty())

	require.NoError(t, ps.Force())
	assert.False(t, ps.IsDirty())

	raw, err := os.ReadFile(ps.File())
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), raw[10])

	// Reads do not dirty the storage.
	_, err = ps.GetByte(10)
	require.NoError(t, err)
	assert.False(t, ps.IsDirty())
}

func TestPagedStorage_EvictionWritesBackDirtyPages(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 16, MaxPages: 2})
	resize(t, ps, 16*8)

	for i := int64(0); i < 8; i++ {
		require.NoError(t, ps.PutUint32(i*16, uint32(i)+100))
	}
	for i := int64(0); i < 8; i++ {
		v, err := ps.GetUint32(i * 16)
		require.NoError(t, err)
		assert.Equal(t, uint32(i)+100, v)
	}
}

func TestPagedStorage_ResizeExtendsWithZeros(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 64)
	require.NoError(t, ps.PutByte(0, 0xEE))

	resize(t, ps, 256)
	assert.Equal(t, int64(256), ps.Length())

	// Earlier write survives the resize, new space reads as zero.
	b, err := ps.GetByte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0xEE), b)

	tail := make([]byte, 64)
	require.NoError(t, ps.Get(192, tail))
	assert.Equal(t, make([]byte, 64), tail)
}

func TestPagedStorage_ResizeTruncateDiscardsTail(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 256)
	require.NoError(t, ps.PutByte(200, 0xAA))

	resize(t, ps, 100)
	_, err := ps.GetByte(200)
	require.ErrorIs(t, err, ErrOutOfBounds)

	// Growing again exposes zeros, not the old bytes.
	resize(t, ps, 256)
	b, err := ps.GetByte(200)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestPagedStorage_CloseIsIdempotent(t *testing.T) {
	ps := openPaged(t, Config{PageSize: 64})
	resize(t, ps, 64)
	require.NoError(t, ps.PutByte(0, 1))

	require.NoError(t, ps.Close())
	require.NoError(t, ps.Close())

	_, err := ps.GetByte(0)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, ps.PutByte(0, 1), ErrClosed)
	require.ErrorIs(t, ps.Force(), ErrClosed)
}

func TestPagedStorage_ReopenSeesFlushedData(t *testing.T) {
	path := testutil.ScratchPath(t)

	ps, err := OpenPaged(path, Config{PageSize: 64})
	require.NoError(t, err)
	ps.Lock()
	require.NoError(t, ps.Resize(128))
	ps.Unlock()
	require.NoError(t, ps.PutUint64(100, 0xCAFEBABE12345678))
	require.NoError(t, ps.Close())

	ps, err = OpenPaged(path, Config{PageSize: 64})
	require.NoError(t, err)
	defer ps.Close()

	assert.Equal(t, int64(128), ps.Length())
	v, err := ps.GetUint64(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xCAFEBABE12345678), v)
}
