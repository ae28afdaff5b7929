package boxscan

import (
	"encoding/binary"
	"io"
)

var be = binary.BigEndian

// windowSize is how much the cursor reads ahead from the underlying source.
const windowSize = 4096

// Cursor is a bounded, seekable big-endian reader over a source of known
// size. Every read advances the position; a read that would cross the
// current limit fails with ErrUnexpectedEndOfStream and leaves the position
// unchanged.
//
// The limit starts at the source size. The walker lowers it to the end of
// each box while that box's decoder runs.
type Cursor struct {
	r     io.ReaderAt
	size  int64
	pos   int64
	limit int64

	// read-ahead window: win holds the bytes at [winOff, winOff+len(win))
	win    []byte
	winOff int64
	winBuf []byte
}

// NewCursor creates a Cursor over the first size bytes of r.
func NewCursor(r io.ReaderAt, size int64) *Cursor {
	return &Cursor{
		r:     r,
		size:  size,
		limit: size,
	}
}

// Pos returns the current position.
func (c *Cursor) Pos() int64 { return c.pos }

// Size returns the size of the underlying source.
func (c *Cursor) Size() int64 { return c.size }

// Limit returns the current read limit.
func (c *Cursor) Limit() int64 { return c.limit }

// Remaining returns the number of bytes between the position and the limit.
func (c *Cursor) Remaining() int64 { return c.limit - c.pos }

// SetLimit moves the read limit to end, clamped to the source size, and
// returns the previous limit.
func (c *Cursor) SetLimit(end int64) int64 {
	prev := c.limit
	c.limit = min(end, c.size)
	return prev
}

// seek moves the position without any bounds check against the limit.
func (c *Cursor) seek(pos int64) {
	c.pos = pos
}

// peek returns the next n bytes without advancing. The slice is only valid
// until the next read.
func (c *Cursor) peek(n int) ([]byte, error) {
	if n < 0 || int64(n) > c.limit-c.pos {
		return nil, ErrUnexpectedEndOfStream
	}
	if c.pos >= c.winOff && c.pos+int64(n) <= c.winOff+int64(len(c.win)) {
		off := c.pos - c.winOff
		return c.win[off : off+int64(n)], nil
	}

	want := max(n, windowSize)
	if rest := c.size - c.pos; int64(want) > rest {
		want = int(rest)
	}
	if cap(c.winBuf) < want {
		c.winBuf = make([]byte, want)
	}
	m, err := c.r.ReadAt(c.winBuf[:want], c.pos)
	if m < n {
		c.win = nil
		if err == nil || err == io.EOF {
			err = ErrUnexpectedEndOfStream
		}
		return nil, err
	}
	c.win = c.winBuf[:m]
	c.winOff = c.pos
	return c.win[:n], nil
}

// ReadUint8 reads one byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.peek(1)
	if err != nil {
		return 0, err
	}
	c.pos++
	return b[0], nil
}

// ReadUint16 reads a big-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.peek(2)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return be.Uint16(b), nil
}

// ReadUint32 reads a big-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.peek(4)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return be.Uint32(b), nil
}

// ReadUint64 reads a big-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.peek(8)
	if err != nil {
		return 0, err
	}
	c.pos += 8
	return be.Uint64(b), nil
}

// ReadInt16 reads a big-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a big-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a big-endian int64.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadFourCC reads a 4-byte tag.
func (c *Cursor) ReadFourCC() (BoxType, error) {
	var t BoxType
	b, err := c.peek(4)
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	c.pos += 4
	return t, nil
}

// ReadMatrix reads a transformation matrix of nine int32 values.
func (c *Cursor) ReadMatrix() ([9]int32, error) {
	var m [9]int32
	b, err := c.peek(36)
	if err != nil {
		return m, err
	}
	for i := range m {
		m[i] = int32(be.Uint32(b[i*4:]))
	}
	c.pos += 36
	return m, nil
}

// ReadBytes reads n bytes into a new slice.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += int64(n)
	return append([]byte(nil), b...), nil
}

// ReadCString reads bytes up to a 0x00 terminator or the limit, whichever
// comes first. The terminator is consumed but not returned.
func (c *Cursor) ReadCString() ([]byte, error) {
	var s []byte
	for c.pos < c.limit {
		ch, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if ch == 0 {
			break
		}
		s = append(s, ch)
	}
	return s, nil
}

// ReadPascalString reads a length byte followed by that many bytes.
func (c *Cursor) ReadPascalString() ([]byte, error) {
	n, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	s, err := c.ReadBytes(int(n))
	if err != nil {
		c.pos-- // leave the position where it was
		return nil, err
	}
	return s, nil
}

// Skip advances the position by n bytes without reading.
func (c *Cursor) Skip(n int64) error {
	if n < 0 {
		return ErrNegativeSkip
	}
	if n > c.limit-c.pos {
		return ErrUnexpectedEndOfStream
	}
	c.pos += n
	return nil
}
