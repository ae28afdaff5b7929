package boxscan

import "fmt"

// hdlr: predefined(4)+handlerType(4)+reserved(12)+name.
//
// The name is every byte up to the end of the box, not a null-terminated
// string: some cameras write a length byte and no terminator. Any
// terminator is kept in the raw bytes.
func decodeHdlr(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	r.skip(4)
	handlerType := r.fourCC()
	r.skip(12)
	if !r.ok() {
		return r.err
	}
	name := r.bytes(int(s.cur.Remaining()))
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "handlerType", handlerType)
	s.Field(d, "name", RawString(name))
	return nil
}

// vmhd: graphicsMode(2)+opcolor(3*2)
func decodeVmhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	graphicsMode := r.u16()
	red, green, blue := r.u16(), r.u16(), r.u16()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "graphicsMode", graphicsMode)
	s.Field(d, "opcolor", fmt.Sprintf("RGB(%d, %d, %d)", red, green, blue))
	return nil
}

// smhd: balance(2, 8.8 fixed point)+reserved(2)
func decodeSmhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	balance := r.i16()
	r.skip(2)
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "balance", fmt.Sprintf("%d / %.3f", balance, float64(balance)/256))
	return nil
}

// hmhd: maxPDUSize(2)+avgPDUSize(2)+maxbitrate(4)+avgbitrate(4)+reserved(4)
func decodeHmhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	maxPDUSize := r.u16()
	avgPDUSize := r.u16()
	maxBitrate := r.u32()
	avgBitrate := r.u32()
	r.skip(4)
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "maxPDUSize", maxPDUSize)
	s.Field(d, "avgPDUSize", avgPDUSize)
	s.Field(d, "maxbitrate", maxBitrate)
	s.Field(d, "avgbitrate", avgBitrate)
	return nil
}

// nmhd has an empty body.
func decodeNmhd(s *Session, b Box) error {
	fb, _, err := ReadFullBox(s.cur, b.PayloadLen())
	if err != nil {
		return err
	}
	reportFullBox(s, b.Depth+1, fb)
	return nil
}
