package boxscan

// urlFlagSelfContained marks a data entry whose media is in the same file.
// Such url boxes carry no location string.
const urlFlagSelfContained = 0x000001

// dref: entryCount(4) then entryCount data entry boxes (url , urn ).
func decodeDref(s *Session, b Box) error {
	fb, _, err := ReadFullBox(s.cur, b.PayloadLen())
	if err != nil {
		return err
	}
	entryCount, err := s.cur.ReadUint32()
	if err != nil {
		return err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "entryCount", entryCount)

	n, err := s.WalkChildren(b)
	if err != nil {
		return err
	}
	if uint32(n) != entryCount {
		s.log.Debug("dref entry count mismatch", "offset", b.Offset, "declared", entryCount, "found", n)
	}
	return nil
}

func decodeURL(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	var location []byte
	if fb.Flags&urlFlagSelfContained == 0 {
		location = r.cstring()
	}
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	if fb.Flags&urlFlagSelfContained != 0 {
		s.Field(d, "location", "no location in URL")
	} else {
		s.Field(d, "location", RawString(location))
	}
	return nil
}

func decodeURN(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	name := r.cstring()
	location := r.cstring()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "name", RawString(name))
	s.Field(d, "location", RawString(location))
	return nil
}
