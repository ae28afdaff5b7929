package boxscan

// fieldReader wraps a Cursor with a sticky error so decoders can read a run
// of fields and check once.
type fieldReader struct {
	c   *Cursor
	err error
}

// ok reports whether all previous reads have been error-free.
func (r *fieldReader) ok() bool { return r.err == nil }

func (r *fieldReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint16()
	r.err = err
	return v
}

func (r *fieldReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint32()
	r.err = err
	return v
}

func (r *fieldReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint64()
	r.err = err
	return v
}

func (r *fieldReader) i16() int16 { return int16(r.u16()) }

func (r *fieldReader) i32() int32 { return int32(r.u32()) }

func (r *fieldReader) i64() int64 { return int64(r.u64()) }

// uintV reads a uint64 for version 1 and a uint32 otherwise.
func (r *fieldReader) uintV(version uint8) uint64 {
	if version == 1 {
		return r.u64()
	}
	return uint64(r.u32())
}

// intV reads an int64 for version 1 and an int32 otherwise.
func (r *fieldReader) intV(version uint8) int64 {
	if version == 1 {
		return r.i64()
	}
	return int64(r.i32())
}

func (r *fieldReader) fourCC() BoxType {
	if r.err != nil {
		return BoxType{}
	}
	v, err := r.c.ReadFourCC()
	r.err = err
	return v
}

func (r *fieldReader) matrix() [9]int32 {
	if r.err != nil {
		return [9]int32{}
	}
	v, err := r.c.ReadMatrix()
	r.err = err
	return v
}

func (r *fieldReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	v, err := r.c.ReadBytes(n)
	r.err = err
	return v
}

func (r *fieldReader) cstring() []byte {
	if r.err != nil {
		return nil
	}
	v, err := r.c.ReadCString()
	r.err = err
	return v
}

func (r *fieldReader) skip(n int64) {
	if r.err != nil {
		return
	}
	r.err = r.c.Skip(n)
}

func (r *fieldReader) fullBox() FullBox {
	if r.err != nil {
		return FullBox{}
	}
	fb, _, err := ReadFullBox(r.c, 0)
	r.err = err
	return fb
}
