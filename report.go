package boxscan

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Reporter receives the results of a scan in stream order.
//
// Box is called for each box before its fields and children; EndBox after
// them. Field values are numbers, strings, BoxType, RawString or [9]int32.
type Reporter interface {
	Box(depth int, h Header)
	Field(depth int, name string, value any)
	Bytes(depth int, offset int64, data []byte)
	EndBox(depth int, h Header)
	Summary(count int) error
}

// RawString is a string field captured byte for byte from the file.
// It is not required to be valid UTF-8.
type RawString []byte

// String decodes the bytes as UTF-8 when valid and as Mac Roman, the
// QuickTime legacy encoding, otherwise.
func (s RawString) String() string {
	if utf8.Valid(s) {
		return string(s)
	}
	out, err := charmap.Macintosh.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(out)
}

func (s RawString) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (t BoxType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TextReporter writes an indented plain text report.
type TextReporter struct {
	w      io.Writer
	indent string
	err    error // sticky write error
}

// NewTextReporter creates a TextReporter writing to w, indenting each
// level with indent.
func NewTextReporter(w io.Writer, indent string) *TextReporter {
	return &TextReporter{w: w, indent: indent}
}

func (t *TextReporter) line(depth int, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat(t.indent, depth), fmt.Sprintf(format, args...))
}

func (t *TextReporter) Box(depth int, h Header) {
	t.line(depth, "Box Found: '%s' of length %d", h.Type, h.Size)
}

func (t *TextReporter) Field(depth int, name string, value any) {
	t.line(depth, "%s = %s", name, formatValue(value))
}

func (t *TextReporter) Bytes(depth int, offset int64, data []byte) {
	t.line(depth, "dump at offset 0x%x=%d, %d bytes", offset, offset, len(data))
	for _, l := range strings.Split(strings.TrimSuffix(hex.Dump(data), "\n"), "\n") {
		t.line(depth, "%s", l)
	}
}

func (t *TextReporter) EndBox(depth int, h Header) {
	if depth == 0 {
		t.line(0, "")
	}
}

func (t *TextReporter) Summary(count int) error {
	t.line(0, "%d boxes scanned", count)
	return t.err
}

func formatValue(v any) string {
	switch v := v.(type) {
	case BoxType:
		return "'" + v.String() + "'"
	case RawString:
		return fmt.Sprintf("%q", v.String())
	case [9]int32:
		return fmt.Sprint(v[:])
	}
	return fmt.Sprint(v)
}
