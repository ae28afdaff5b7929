package boxscan

// DumpBytes reports up to n bytes from the cursor position, clamped to the
// current limit, and restores the position exactly.
func (s *Session) DumpBytes(depth int, n int) error {
	c := s.cur
	pos := c.Pos()
	n = int(min(int64(n), c.Remaining()))
	data, err := c.ReadBytes(n)
	c.seek(pos)
	if err != nil {
		return err
	}
	s.rep.Bytes(depth, pos, data)
	return nil
}
