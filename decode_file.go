package boxscan

import "fmt"

// ftyp: major brand, minor version, then 4-byte compatible brands filling
// the payload. A trailing partial brand is left unread.
func decodeFtyp(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	major := r.fourCC()
	minor := r.u32()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	s.Field(d, "major brand", major)
	s.Field(d, "minor version", minor)
	for remaining := b.PayloadLen() - 8; remaining >= 4; remaining -= 4 {
		brand := r.fourCC()
		if !r.ok() {
			return r.err
		}
		s.Field(d, "compat brand", brand)
	}
	return nil
}

// uuid: 16-byte extended type at the start of the payload, the rest opaque.
func decodeUUID(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	u := r.bytes(16)
	if !r.ok() {
		return r.err
	}
	s.Field(b.Depth+1, "usertype", fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16]))
	return nil
}

// mdat, free, skip: the payload is never read.
func decodeData(s *Session, b Box) error {
	s.Field(b.Depth+1, "dataLen", b.PayloadLen())
	return nil
}

func decodeContainer(s *Session, b Box) error {
	_, err := s.WalkChildren(b)
	return err
}

// listChildren reports the children of b without decoding any of them.
func listChildren(s *Session, b Box) error {
	saved := s.registry
	s.registry = nil
	defer func() { s.registry = saved }()

	_, err := s.WalkChildren(b)
	return err
}
