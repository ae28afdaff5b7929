package boxscan

// ElstEntry is an edit list entry.
type ElstEntry struct {
	SegmentDuration uint64
	MediaTime       int64
	MediaRateInt    int16
	MediaRateFrac   int16
}

// elst: entryCount(4) then entries of
//
//	v1: segmentDuration(8)+mediaTime(8)+mediaRateInt(2)+mediaRateFrac(2) = 20
//	v0: segmentDuration(4)+mediaTime(4)+mediaRateInt(2)+mediaRateFrac(2) = 12
func decodeElst(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	entryCount := r.u32()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "entryCount", entryCount)

	for i := uint32(0); i < entryCount; i++ {
		e := ElstEntry{
			SegmentDuration: r.uintV(fb.Version),
			MediaTime:       r.intV(fb.Version),
			MediaRateInt:    r.i16(),
			MediaRateFrac:   r.i16(),
		}
		if !r.ok() {
			return r.err
		}
		s.Field(d+1, "entry", i)
		s.Field(d+1, "segmentDuration", e.SegmentDuration)
		s.Field(d+1, "mediaTime", e.MediaTime)
		s.Field(d+1, "mediaRateInt", e.MediaRateInt)
		s.Field(d+1, "mediaRateFrac", e.MediaRateFrac)
	}
	return nil
}
