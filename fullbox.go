package boxscan

// FullBox holds the version and flags prefix of a full box.
type FullBox struct {
	Version uint8
	Flags   uint32 // 24 bits
}

// ReadFullBox reads the version and flags prefix and returns the number of
// payload bytes left after it.
func ReadFullBox(c *Cursor, payloadLen int64) (FullBox, int64, error) {
	vf, err := c.ReadUint32()
	if err != nil {
		return FullBox{}, 0, err
	}
	fb := FullBox{
		Version: uint8(vf >> 24),
		Flags:   vf & 0x00ffffff,
	}
	return fb, payloadLen - 4, nil
}
