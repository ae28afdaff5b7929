package boxscan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetsuo/boxscan/internal/boxtest"
)

func TestReadHeader(t *testing.T) {
	data := boxtest.New().StartBox("free").Zeros(4).EndBox().Bytes()
	h, err := ReadHeader(newTestCursor(data))
	require.NoError(t, err)
	require.Equal(t, TypeFree, h.Type)
	require.Equal(t, int64(0), h.Offset)
	require.Equal(t, int64(12), h.Size)
	require.Equal(t, 8, h.HeaderSize)
	require.Equal(t, int64(4), h.PayloadLen())
	require.Equal(t, int64(8), h.PayloadStart())
	require.False(t, h.ToEOF)
}

func TestReadHeaderLargeSize(t *testing.T) {
	data := boxtest.New().StartLargeBox("mdat").Zeros(10).EndBox().Bytes()
	c := newTestCursor(data)
	h, err := ReadHeader(c)
	require.NoError(t, err)
	require.Equal(t, TypeMdat, h.Type)
	require.Equal(t, int64(26), h.Size)
	require.Equal(t, 16, h.HeaderSize)
	require.Equal(t, h.Size-16, h.PayloadLen())
	require.Equal(t, int64(16), c.Pos())
}

func TestReadHeaderToEOF(t *testing.T) {
	b := boxtest.New().Ftyp("isom", 0)
	start := b.Len()
	data := b.StartToEOFBox("moov").Zeros(20).EndBox().Bytes()

	c := newTestCursor(data)
	require.NoError(t, c.Skip(int64(start)))
	h, err := ReadHeader(c)
	require.NoError(t, err)
	require.True(t, h.ToEOF)
	require.Equal(t, int64(start), h.Offset)
	require.Equal(t, int64(len(data)-start), h.Size)
	require.Equal(t, int64(len(data)-start-8), h.PayloadLen())
	require.Equal(t, int64(len(data)), h.End())
}

func TestReadHeaderTruncated(t *testing.T) {
	_, err := ReadHeader(newTestCursor([]byte{0, 0, 0, 8, 'f'}))
	require.ErrorIs(t, err, ErrTruncatedHeader)

	// size 1 without room for the 64-bit size
	data := boxtest.New().Uint32(1).FourCC("mdat").Uint32(0).Bytes()
	_, err = ReadHeader(newTestCursor(data))
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream)
}

func TestReadHeaderBadSize(t *testing.T) {
	data := boxtest.New().Uint32(4).FourCC("free").Bytes()
	_, err := ReadHeader(newTestCursor(data))
	require.ErrorIs(t, err, ErrBadBoxSize)

	data = boxtest.New().Uint32(1).FourCC("mdat").Uint64(12).Bytes()
	_, err = ReadHeader(newTestCursor(data))
	require.ErrorIs(t, err, ErrBadBoxSize)

	data = boxtest.New().Uint32(1).FourCC("mdat").Uint64(1 << 63).Bytes()
	_, err = ReadHeader(newTestCursor(data))
	require.ErrorIs(t, err, ErrBoxOverflow)
}

func TestReadFullBox(t *testing.T) {
	c := newTestCursor([]byte{1, 0x00, 0x00, 0x03})
	fb, remaining, err := ReadFullBox(c, 20)
	require.NoError(t, err)
	require.Equal(t, FullBox{Version: 1, Flags: 3}, fb)
	require.Equal(t, int64(16), remaining)

	_, _, err = ReadFullBox(newTestCursor([]byte{1, 0}), 2)
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream)
}
