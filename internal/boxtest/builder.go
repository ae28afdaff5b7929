// Package boxtest builds ISOBMFF box fixtures in memory for tests.
package boxtest

import (
	"encoding/binary"
	"math"
)

var be = binary.BigEndian

const uint32Max = math.MaxUint32

type sizeMode int

const (
	sizeNormal sizeMode = iota // 32-bit size backpatched by EndBox
	sizeLarge                  // size field 1, 64-bit size backpatched by EndBox
	sizeToEOF                  // size field 0, left as is
)

// builderFrame tracks the start offset of a box for size backpatching.
type builderFrame struct {
	offset int
	mode   sizeMode
}

// Builder encodes boxes into a growing byte slice.
type Builder struct {
	buf   []byte
	stack []builderFrame
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Bytes returns the written data.
func (b *Builder) Bytes() []byte { return b.buf }

// Len returns the number of bytes written.
func (b *Builder) Len() int { return len(b.buf) }

func (b *Builder) Uint8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) Uint16(v uint16) *Builder {
	b.buf = be.AppendUint16(b.buf, v)
	return b
}

func (b *Builder) Uint32(v uint32) *Builder {
	b.buf = be.AppendUint32(b.buf, v)
	return b
}

func (b *Builder) Uint64(v uint64) *Builder {
	b.buf = be.AppendUint64(b.buf, v)
	return b
}

func (b *Builder) Int16(v int16) *Builder { return b.Uint16(uint16(v)) }

func (b *Builder) Int32(v int32) *Builder { return b.Uint32(uint32(v)) }

// Zeros appends n zero bytes.
func (b *Builder) Zeros(n int) *Builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

// Raw appends p as is.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// FourCC appends a 4-character code. It panics if len(s) != 4.
func (b *Builder) FourCC(s string) *Builder {
	if len(s) != 4 {
		panic("boxtest: fourcc must be 4 bytes: " + s)
	}
	b.buf = append(b.buf, s...)
	return b
}

// CString appends s followed by a null terminator.
func (b *Builder) CString(s string) *Builder {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return b
}

// StartBox begins a box with a 32-bit size. Write content, then call EndBox.
func (b *Builder) StartBox(t string) *Builder {
	b.stack = append(b.stack, builderFrame{offset: len(b.buf)})
	return b.Uint32(0).FourCC(t)
}

// StartLargeBox begins a box using the size 1 form with a 64-bit size.
func (b *Builder) StartLargeBox(t string) *Builder {
	b.stack = append(b.stack, builderFrame{offset: len(b.buf), mode: sizeLarge})
	return b.Uint32(1).FourCC(t).Uint64(0)
}

// StartToEOFBox begins a box with size 0, which extends to end of file.
// EndBox leaves its size untouched.
func (b *Builder) StartToEOFBox(t string) *Builder {
	b.stack = append(b.stack, builderFrame{offset: len(b.buf), mode: sizeToEOF})
	return b.Uint32(0).FourCC(t)
}

// StartFullBox begins a box followed by version and flags.
func (b *Builder) StartFullBox(t string, version uint8, flags uint32) *Builder {
	b.StartBox(t)
	return b.Uint32(uint32(version)<<24 | flags&0x00ffffff)
}

// EndBox finishes the current box by backpatching its size.
func (b *Builder) EndBox() *Builder {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	size := len(b.buf) - f.offset
	switch f.mode {
	case sizeNormal:
		be.PutUint32(b.buf[f.offset:], uint32(size))
	case sizeLarge:
		be.PutUint64(b.buf[f.offset+8:], uint64(size))
	}
	return b
}

// PatchSize overwrites the 32-bit size field of the box starting at offset.
// Use it to build corrupt input.
func (b *Builder) PatchSize(offset int, size uint32) *Builder {
	be.PutUint32(b.buf[offset:], size)
	return b
}

// identity is the unity transformation matrix.
var identity = [9]int32{0x00010000, 0, 0, 0, 0x00010000, 0, 0, 0, 0x40000000}

func (b *Builder) matrix() {
	for _, v := range identity {
		b.Int32(v)
	}
}

// uintV writes v as 64 bits for version 1 and 32 bits otherwise.
func (b *Builder) uintV(version uint8, v uint64) {
	if version == 1 {
		b.Uint64(v)
	} else {
		b.Uint32(uint32(v))
	}
}

// Ftyp writes a complete ftyp box.
func (b *Builder) Ftyp(brand string, minor uint32, compat ...string) *Builder {
	b.StartBox("ftyp").FourCC(brand).Uint32(minor)
	for _, c := range compat {
		b.FourCC(c)
	}
	return b.EndBox()
}

// Mvhd writes a complete mvhd box of the given version.
func (b *Builder) Mvhd(version uint8, timescale uint32, duration uint64, nextTrackID uint32) *Builder {
	b.StartFullBox("mvhd", version, 0)
	b.uintV(version, 1) // creation time
	b.uintV(version, 2) // modification time
	b.Uint32(timescale)
	b.uintV(version, duration)
	b.Uint32(0x00010000) // rate 1.0
	b.Uint16(0x0100)     // volume 1.0
	b.Zeros(10)          // reserved
	b.matrix()
	b.Zeros(24) // predefined
	b.Uint32(nextTrackID)
	return b.EndBox()
}

// Tkhd writes a complete tkhd box of the given version.
// Width and height are 16.16 fixed point.
func (b *Builder) Tkhd(version uint8, flags uint32, trackID uint32, duration uint64, width, height uint32) *Builder {
	b.StartFullBox("tkhd", version, flags)
	b.uintV(version, 1) // creation time
	b.uintV(version, 2) // modification time
	b.Uint32(trackID)
	b.Uint32(0) // reserved
	b.uintV(version, duration)
	b.Zeros(8)       // reserved
	b.Uint16(0)      // layer
	b.Uint16(0)      // alternate group
	b.Uint16(0x0100) // volume
	b.Uint16(0)      // reserved
	b.matrix()
	b.Uint32(width)
	b.Uint32(height)
	return b.EndBox()
}

// Mdhd writes a complete mdhd box of the given version.
func (b *Builder) Mdhd(version uint8, timescale uint32, duration uint64, language uint16) *Builder {
	b.StartFullBox("mdhd", version, 0)
	b.uintV(version, 1) // creation time
	b.uintV(version, 2) // modification time
	b.Uint32(timescale)
	b.uintV(version, duration)
	b.Uint16(language)
	b.Uint16(0) // predefined
	return b.EndBox()
}

// Hdlr writes a complete hdlr box. name is written as given, so callers
// decide whether it carries a terminator.
func (b *Builder) Hdlr(handlerType string, name []byte) *Builder {
	b.StartFullBox("hdlr", 0, 0)
	b.Uint32(0) // predefined
	b.FourCC(handlerType)
	b.Zeros(12) // reserved
	b.Raw(name)
	return b.EndBox()
}

// Vmhd writes a complete vmhd box.
func (b *Builder) Vmhd(graphicsMode uint16, red, green, blue uint16) *Builder {
	b.StartFullBox("vmhd", 0, 1)
	b.Uint16(graphicsMode)
	b.Uint16(red).Uint16(green).Uint16(blue)
	return b.EndBox()
}

// Smhd writes a complete smhd box.
func (b *Builder) Smhd(balance int16) *Builder {
	b.StartFullBox("smhd", 0, 0)
	b.Int16(balance)
	b.Uint16(0) // reserved
	return b.EndBox()
}

// Dref writes a dref box with a single self-referencing url entry.
func (b *Builder) Dref() *Builder {
	b.StartFullBox("dref", 0, 0)
	b.Uint32(1) // entry count
	b.StartFullBox("url ", 0, 1)
	b.EndBox()
	return b.EndBox()
}

// ElstEntry is an edit list entry.
type ElstEntry struct {
	SegmentDuration uint64
	MediaTime       int64
	MediaRateInt    int16
	MediaRateFrac   int16
}

// Elst writes a complete elst box, using version 1 when an entry needs it.
func (b *Builder) Elst(entries ...ElstEntry) *Builder {
	var version uint8
	for _, e := range entries {
		if e.SegmentDuration > uint32Max || e.MediaTime != int64(int32(e.MediaTime)) {
			version = 1
			break
		}
	}
	b.StartFullBox("elst", version, 0)
	b.Uint32(uint32(len(entries)))
	for _, e := range entries {
		if version == 1 {
			b.Uint64(e.SegmentDuration)
			b.Uint64(uint64(e.MediaTime))
		} else {
			b.Uint32(uint32(e.SegmentDuration))
			b.Uint32(uint32(e.MediaTime))
		}
		b.Int16(e.MediaRateInt)
		b.Int16(e.MediaRateFrac)
	}
	return b.EndBox()
}
