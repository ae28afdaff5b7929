package boxscan

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEndOfStream is returned when a read would cross the end
	// of the file or the end of the box being decoded.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")

	// ErrTruncatedHeader is returned when fewer than 8 bytes remain where a
	// box header is expected.
	ErrTruncatedHeader = errors.New("truncated box header")

	// ErrBoxOverflow matches every *BoxOverflowError with errors.Is.
	ErrBoxOverflow = errors.New("box overflows enclosing range")

	// ErrBadBoxSize is returned for a declared size smaller than the header
	// that carries it.
	ErrBadBoxSize = errors.New("box size smaller than header")

	// ErrNegativeSkip is returned by Cursor.Skip for n < 0.
	ErrNegativeSkip = errors.New("negative skip")
)

// BoxOverflowError reports a box whose payload extends past the end of the
// range that encloses it.
type BoxOverflowError struct {
	Type     BoxType
	Offset   int64 // box start
	End      int64 // claimed end of the payload
	RangeEnd int64 // end of the enclosing range
}

func (e *BoxOverflowError) Error() string {
	return fmt.Sprintf("box %q at offset %d ends at %d, past enclosing range end %d",
		e.Type, e.Offset, e.End, e.RangeEnd)
}

func (e *BoxOverflowError) Is(target error) bool {
	return target == ErrBoxOverflow
}

// FileOpenError is returned by ScanFile when the input cannot be opened.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }
