package boxscan

import "fmt"

// Header describes one box as found in the stream.
type Header struct {
	Type       BoxType
	Offset     int64 // byte offset of the box from start of file
	Size       int64 // total box size including header
	HeaderSize int   // 8 or 16 bytes
	ToEOF      bool  // size field was 0: the box runs to end of file
}

// PayloadLen returns the size of the box data (excluding the header).
func (h Header) PayloadLen() int64 {
	return h.Size - int64(h.HeaderSize)
}

// PayloadStart returns the offset of the first payload byte.
func (h Header) PayloadStart() int64 {
	return h.Offset + int64(h.HeaderSize)
}

// End returns the offset just past the box.
func (h Header) End() int64 {
	return h.Offset + h.Size
}

// ReadHeader reads a box header at the cursor position and leaves the cursor
// on the first payload byte.
//
// A size field of 1 is followed by a 64-bit size. A size field of 0 means
// the box extends to end of file, and Size is computed from the file size.
func ReadHeader(c *Cursor) (Header, error) {
	boxStart := c.Pos()
	if c.Remaining() < 8 {
		return Header{}, fmt.Errorf("at offset %d: %w (%d bytes left)", boxStart, ErrTruncatedHeader, c.Remaining())
	}

	size32, err := c.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	t, err := c.ReadFourCC()
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Type:       t,
		Offset:     boxStart,
		Size:       int64(size32),
		HeaderSize: 8,
	}

	switch size32 {
	case 1:
		// Extended 64-bit size
		size64, err := c.ReadUint64()
		if err != nil {
			return Header{}, fmt.Errorf("box %q at offset %d: extended size: %w", t, boxStart, err)
		}
		if int64(size64) < 0 {
			return Header{}, fmt.Errorf("box %q at offset %d: size %d: %w", t, boxStart, size64, ErrBoxOverflow)
		}
		h.Size = int64(size64)
		h.HeaderSize = 16
	case 0:
		// Box extends to end of file
		h.Size = c.Size() - boxStart
		h.ToEOF = true
	}

	if h.Size < int64(h.HeaderSize) {
		return Header{}, fmt.Errorf("box %q at offset %d: size %d: %w", t, boxStart, h.Size, ErrBadBoxSize)
	}
	return h, nil
}
