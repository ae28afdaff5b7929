package boxscan

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

func reportFullBox(s *Session, depth int, fb FullBox) {
	s.Field(depth, "version", fb.Version)
	s.Field(depth, "flags", fmt.Sprintf("0x%x", fb.Flags))
}

// mvhd
//
//	v1: ctime(8)+mtime(8)+timescale(4)+duration(8)+rate(4)+volume(2)+reserved(10)+matrix(36)+predefined(24)+nextTrackId(4) = 108
//	v0: ctime(4)+mtime(4)+timescale(4)+duration(4)+rate(4)+volume(2)+reserved(10)+matrix(36)+predefined(24)+nextTrackId(4) = 96
func decodeMvhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	creation := r.uintV(fb.Version)
	modification := r.uintV(fb.Version)
	timescale := r.u32()
	duration := r.uintV(fb.Version)
	rate := r.u32()
	volume := r.u16()
	r.skip(10)
	matrix := r.matrix()
	r.skip(24)
	nextTrackID := r.u32()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "creation", creation)
	s.Field(d, "modification", modification)
	s.Field(d, "timescale", timescale)
	s.Field(d, "duration", duration)
	s.Field(d, "rate", fmt.Sprintf("0x%08x", rate))
	s.Field(d, "volume", fmt.Sprintf("0x%04x", volume))
	s.Field(d, "matrix", matrix)
	s.Field(d, "nextTrackID", nextTrackID)
	return nil
}

// tkhd
//
//	v1: ctime(8)+mtime(8)+trackId(4)+reserved(4)+duration(8)
//	v0: ctime(4)+mtime(4)+trackId(4)+reserved(4)+duration(4)
//	then reserved(8)+layer(2)+altGroup(2)+volume(2)+reserved(2)+matrix(36)+width(4)+height(4)
func decodeTkhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	creation := r.uintV(fb.Version)
	modification := r.uintV(fb.Version)
	trackID := r.u32()
	r.skip(4)
	duration := r.uintV(fb.Version)
	r.skip(8)
	layer := r.i16()
	altGroup := r.i16()
	volume := r.i16()
	r.skip(2)
	matrix := r.matrix()
	width := r.i32()
	height := r.i32()
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "creation", creation)
	s.Field(d, "modification", modification)
	s.Field(d, "trackID", trackID)
	s.Field(d, "duration", duration)
	s.Field(d, "layer", layer)
	s.Field(d, "altGroup", altGroup)
	s.Field(d, "volume", fmt.Sprintf("0x%04x", uint16(volume)))
	s.Field(d, "matrix", matrix)
	s.Field(d, "width", width)
	s.Field(d, "height", height)
	return nil
}

// mdhd
//
//	v1: ctime(8)+mtime(8)+timescale(4)+duration(8)+lang(2)+predefined(2)
//	v0: ctime(4)+mtime(4)+timescale(4)+duration(4)+lang(2)+predefined(2)
func decodeMdhd(s *Session, b Box) error {
	r := fieldReader{c: s.cur}
	fb := r.fullBox()
	creation := r.uintV(fb.Version)
	modification := r.uintV(fb.Version)
	timescale := r.u32()
	duration := r.uintV(fb.Version)
	language := r.u16()
	r.skip(2)
	if !r.ok() {
		return r.err
	}

	d := b.Depth + 1
	reportFullBox(s, d, fb)
	s.Field(d, "creation", creation)
	s.Field(d, "modification", modification)
	s.Field(d, "timescale", timescale)
	s.Field(d, "duration", duration)
	s.Field(d, "language", decodeLanguage(language))
	return nil
}

// decodeLanguage unpacks an ISO-639-2/T code: one pad bit, then three 5-bit
// letters each stored as the character minus 0x60.
func decodeLanguage(packed uint16) string {
	br := bitio.NewReader(bytes.NewReader([]byte{byte(packed >> 8), byte(packed)}))
	br.TryReadBits(1)
	var lang [3]byte
	for i := range lang {
		lang[i] = byte(br.TryReadBits(5)) + 0x60
	}
	return string(lang[:])
}
