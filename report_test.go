package boxscan

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetsuo/boxscan/internal/boxtest"
)

func scanText(t *testing.T, data []byte, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	s := NewSession(bytes.NewReader(data), int64(len(data)), NewTextReporter(&buf, "    "), opts...)
	_, err := s.Scan()
	require.NoError(t, err)
	return buf.String()
}

func TestTextReporter(t *testing.T) {
	out := scanText(t, boxtest.New().Ftyp("isom", 512, "mp41").Bytes())
	require.Equal(t, `Box Found: 'ftyp' of length 20
    major brand = 'isom'
    minor version = 512
    compat brand = 'mp41'

1 boxes scanned
`, out)
}

func TestTextReporterNesting(t *testing.T) {
	b := boxtest.New()
	b.StartBox("moov").StartBox("trak").StartBox("mdia")
	b.Hdlr("soun", []byte("Core Media Audio\x00"))
	b.EndBox().EndBox().EndBox()

	out := scanText(t, b.Bytes())
	require.Contains(t, out, "\n    Box Found: 'trak' of length ")
	require.Contains(t, out, "\n                handlerType = 'soun'\n")
	require.Contains(t, out, "\n                name = \"Core Media Audio\\x00\"\n")
	require.Contains(t, out, "\n1 boxes scanned\n")
}

func TestTextReporterDump(t *testing.T) {
	data := boxtest.New().StartBox("abcd").Raw([]byte("hello")).EndBox().Bytes()

	out := scanText(t, data, WithDump(4))
	require.Contains(t, out, "    dump at offset 0x8=8, 4 bytes\n")
	require.Contains(t, out, "|hell|")

	out = scanText(t, data)
	require.NotContains(t, out, "dump at offset")
}

func TestRawString(t *testing.T) {
	require.Equal(t, "VideoHandler", RawString("VideoHandler").String())
	// Mac Roman 0x8e is e with acute accent
	require.Equal(t, "Café", RawString("Caf\x8e").String())

	text, err := RawString("Caf\x8e").MarshalText()
	require.NoError(t, err)
	require.Equal(t, "Café", string(text))
}

func TestJSONReporter(t *testing.T) {
	b := boxtest.New().Ftyp("isom", 0)
	b.StartBox("moov").Mvhd(0, 1000, 0, 2)
	b.StartBox("trak").Tkhd(0, 1, 1, 0, 0, 0).EndBox()
	b.EndBox()
	b.StartBox("wide").EndBox()
	data := b.Bytes()

	var buf bytes.Buffer
	rep := NewJSONReporter(&buf)
	count, err := NewSession(bytes.NewReader(data), int64(len(data)), rep).Scan()
	require.NoError(t, err)
	require.Equal(t, 3, count)

	type node struct {
		Type      string `json:"type"`
		Offset    int64  `json:"offset"`
		Size      int64  `json:"size"`
		Version   *uint8 `json:"version"`
		Flags     string `json:"flags"`
		Container bool   `json:"container"`
		Fields    []struct {
			Name  string `json:"name"`
			Value any    `json:"value"`
		} `json:"fields"`
		Children []node `json:"children"`
	}
	var doc struct {
		Boxes []node `json:"boxes"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, 3, doc.Count)
	require.Len(t, doc.Boxes, 3)

	ftyp := doc.Boxes[0]
	require.Equal(t, "ftyp", ftyp.Type)
	require.Equal(t, "major brand", ftyp.Fields[0].Name)
	require.Equal(t, "isom", ftyp.Fields[0].Value)
	require.False(t, ftyp.Container)

	moov := doc.Boxes[1]
	require.Equal(t, "moov", moov.Type)
	require.True(t, moov.Container)
	require.Nil(t, moov.Version)
	require.Empty(t, moov.Fields)
	require.Len(t, moov.Children, 2)
	require.Equal(t, "mvhd", moov.Children[0].Type)
	require.Equal(t, "trak", moov.Children[1].Type)
	require.Equal(t, "tkhd", moov.Children[1].Children[0].Type)

	tkhd := moov.Children[1].Children[0]
	require.NotNil(t, tkhd.Version)
	require.Equal(t, uint8(0), *tkhd.Version)
	require.Equal(t, "0x1", tkhd.Flags)
	require.Equal(t, "creation", tkhd.Fields[0].Name)

	wide := doc.Boxes[2]
	require.Equal(t, "wide", wide.Type)
	require.Equal(t, int64(8), wide.Size)
	require.Equal(t, int64(len(data)-8), wide.Offset)
}

func TestJSONReporterDump(t *testing.T) {
	data := boxtest.New().StartBox("abcd").Raw([]byte{0xde, 0xad, 0xbe, 0xef}).EndBox().Bytes()

	var buf bytes.Buffer
	rep := NewJSONReporter(&buf)
	_, err := NewSession(bytes.NewReader(data), int64(len(data)), rep, WithDump(16)).Scan()
	require.NoError(t, err)
	require.Len(t, rep.Boxes, 1)
	require.Equal(t, "deadbeef", rep.Boxes[0].Dump)
}

func TestDumpBytesRestoresPosition(t *testing.T) {
	data := boxtest.New().StartBox("abcd").Raw([]byte("0123456789")).EndBox().Bytes()
	s, rec := newTestSession(data)
	require.NoError(t, s.cur.Skip(8))
	s.cur.SetLimit(12)

	require.NoError(t, s.DumpBytes(1, 64))
	require.Equal(t, int64(8), s.cur.Pos())
	require.Equal(t, [][]byte{[]byte("0123")}, rec.dumps)
}

func TestScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mp4")
	require.NoError(t, os.WriteFile(path, sampleMovie(), 0o644))

	var buf bytes.Buffer
	count, err := ScanFile(path, NewTextReporter(&buf, "  "))
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.Contains(t, buf.String(), "Box Found: 'moov'")
	require.Contains(t, buf.String(), "\n  Box Found: 'mvhd' of length 108\n")
	require.Contains(t, buf.String(), "4 boxes scanned\n")
}

func TestScanFileOpenError(t *testing.T) {
	rec := &recorder{}
	path := filepath.Join(t.TempDir(), "missing.mp4")

	_, err := ScanFile(path, rec)
	require.Error(t, err)

	var openErr *FileOpenError
	require.True(t, errors.As(err, &openErr))
	require.Equal(t, path, openErr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, rec.boxes)
	require.Zero(t, rec.summary)
}
