package boxscan

import "maps"

// Box is a box handed to a Decoder: its header plus the display depth of
// the box line. Decoders report their fields at Depth+1.
type Box struct {
	Header
	Depth int
}

// Decoder decodes the payload of one box type.
//
// The cursor is on the first payload byte when DecodeBox is called and its
// limit is the end of the box, so a decoder cannot read past its box.
// A decoder need not consume the whole payload: the walker moves the cursor
// to the end of the box once the decoder returns.
type Decoder interface {
	DecodeBox(s *Session, b Box) error
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(s *Session, b Box) error

func (f DecoderFunc) DecodeBox(s *Session, b Box) error { return f(s, b) }

// Skip is the decoder used for box types with no registered decoder.
// It steps over the payload without reading it.
var Skip Decoder = DecoderFunc(skipBox)

func skipBox(s *Session, b Box) error {
	s.log.Debug("skipping box", "type", b.Type.String(), "offset", b.Offset, "size", b.Size)
	if s.dump > 0 && b.PayloadLen() > 0 {
		if err := s.DumpBytes(b.Depth+1, s.dump); err != nil {
			return err
		}
	}
	return s.cur.Skip(b.PayloadLen())
}

// Registry maps box types to decoders. A nil Registry is valid and skips
// every box.
type Registry map[BoxType]Decoder

// Lookup returns the decoder registered for t, or Skip.
func (r Registry) Lookup(t BoxType) Decoder {
	if d, ok := r[t]; ok {
		return d
	}
	return Skip
}

// Register sets the decoder for t, replacing any previous one.
func (r Registry) Register(t BoxType, d Decoder) {
	r[t] = d
}

// Clone returns a copy of r that can be modified independently.
func (r Registry) Clone() Registry {
	if r == nil {
		return Registry{}
	}
	return maps.Clone(r)
}

var defaultDecoders = Registry{
	TypeFtyp: DecoderFunc(decodeFtyp),
	TypeUUID: DecoderFunc(decodeUUID),
	TypeMdat: DecoderFunc(decodeData),
	TypeFree: DecoderFunc(decodeData),
	TypeSkip: DecoderFunc(decodeData),

	TypeMoov: DecoderFunc(decodeContainer),
	TypeTrak: DecoderFunc(decodeContainer),
	TypeMdia: DecoderFunc(decodeContainer),
	TypeMinf: DecoderFunc(decodeContainer),
	TypeDinf: DecoderFunc(decodeContainer),
	TypeEdts: DecoderFunc(decodeContainer),
	TypeUdta: DecoderFunc(listChildren),
	TypeStbl: DecoderFunc(listChildren),

	TypeMvhd: DecoderFunc(decodeMvhd),
	TypeTkhd: DecoderFunc(decodeTkhd),
	TypeMdhd: DecoderFunc(decodeMdhd),
	TypeHdlr: DecoderFunc(decodeHdlr),
	TypeVmhd: DecoderFunc(decodeVmhd),
	TypeSmhd: DecoderFunc(decodeSmhd),
	TypeHmhd: DecoderFunc(decodeHmhd),
	TypeNmhd: DecoderFunc(decodeNmhd),
	TypeDref: DecoderFunc(decodeDref),
	TypeURL:  DecoderFunc(decodeURL),
	TypeURN:  DecoderFunc(decodeURN),
	TypeElst: DecoderFunc(decodeElst),
}

// DefaultRegistry returns a new Registry holding the built-in decoders.
func DefaultRegistry() Registry {
	return defaultDecoders.Clone()
}
