// Package boxscan walks the box tree of ISO Base Media File Format (ISOBMFF)
// files and reports the fields of the structural boxes it recognizes.
package boxscan

// BoxType is a 4-byte box type identifier.
// The bytes are opaque; they are not required to be printable.
type BoxType [4]byte

func (t BoxType) String() string {
	return string(t[:])
}

// Known box types.
var (
	TypeFtyp = BoxType{'f', 't', 'y', 'p'}
	TypeMoov = BoxType{'m', 'o', 'o', 'v'}
	TypeMvhd = BoxType{'m', 'v', 'h', 'd'}
	TypeTrak = BoxType{'t', 'r', 'a', 'k'}
	TypeTkhd = BoxType{'t', 'k', 'h', 'd'}
	TypeEdts = BoxType{'e', 'd', 't', 's'}
	TypeElst = BoxType{'e', 'l', 's', 't'}
	TypeMdia = BoxType{'m', 'd', 'i', 'a'}
	TypeMdhd = BoxType{'m', 'd', 'h', 'd'}
	TypeHdlr = BoxType{'h', 'd', 'l', 'r'}
	TypeMinf = BoxType{'m', 'i', 'n', 'f'}
	TypeVmhd = BoxType{'v', 'm', 'h', 'd'}
	TypeSmhd = BoxType{'s', 'm', 'h', 'd'}
	TypeHmhd = BoxType{'h', 'm', 'h', 'd'}
	TypeNmhd = BoxType{'n', 'm', 'h', 'd'}
	TypeDinf = BoxType{'d', 'i', 'n', 'f'}
	TypeDref = BoxType{'d', 'r', 'e', 'f'}
	TypeURL  = BoxType{'u', 'r', 'l', ' '}
	TypeURN  = BoxType{'u', 'r', 'n', ' '}
	TypeStbl = BoxType{'s', 't', 'b', 'l'}
	TypeUdta = BoxType{'u', 'd', 't', 'a'}
	TypeUUID = BoxType{'u', 'u', 'i', 'd'}
	// Data boxes
	TypeMdat = BoxType{'m', 'd', 'a', 't'}
	TypeFree = BoxType{'f', 'r', 'e', 'e'}
	TypeSkip = BoxType{'s', 'k', 'i', 'p'}
)

// IsFullBox reports whether boxes of type t start with version and flags
// fields and have a decoder in the default registry.
func IsFullBox(t BoxType) bool {
	switch t {
	case TypeMvhd, TypeTkhd, TypeMdhd, TypeHdlr,
		TypeVmhd, TypeSmhd, TypeHmhd, TypeNmhd,
		TypeDref, TypeURL, TypeURN, TypeElst:
		return true
	}
	return false
}

// IsContainerBox reports whether t is a pure container, holding nothing but
// child boxes.
func IsContainerBox(t BoxType) bool {
	switch t {
	case TypeMoov, TypeTrak, TypeEdts, TypeMdia,
		TypeMinf, TypeDinf, TypeStbl, TypeUdta:
		return true
	}
	return false
}
