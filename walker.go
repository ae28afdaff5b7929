package boxscan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Session is one scan of one file. It owns the cursor and is not safe for
// concurrent use; separate sessions are independent.
type Session struct {
	cur      *Cursor
	registry Registry
	rep      Reporter
	log      *slog.Logger
	dump     int // bytes of unknown payloads to hex-dump, 0 disables
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for diagnostics. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRegistry replaces the default decoders.
//
// The children of udta and stbl are only listed: no decoder runs for them,
// including decoders registered here.
func WithRegistry(r Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithDump makes the skip decoder hex-dump up to n payload bytes of every
// box it skips.
func WithDump(n int) Option {
	return func(s *Session) { s.dump = n }
}

// NewSession creates a Session over the first size bytes of r, reporting
// to rep.
func NewSession(r io.ReaderAt, size int64, rep Reporter, opts ...Option) *Session {
	s := &Session{
		cur:      NewCursor(r, size),
		registry: defaultDecoders,
		rep:      rep,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cursor returns the session's cursor.
func (s *Session) Cursor() *Cursor { return s.cur }

// Field reports a decoded field at the given depth.
func (s *Session) Field(depth int, name string, value any) {
	s.rep.Field(depth, name, value)
}

// Scan walks the whole file and reports the number of top-level boxes.
func (s *Session) Scan() (int, error) {
	count, err := s.Walk(0, s.cur.Size(), 0)
	if err != nil {
		return count, err
	}
	return count, s.rep.Summary(count)
}

// WalkChildren walks the boxes from the cursor position to the end of b,
// one level below it.
func (s *Session) WalkChildren(b Box) (int, error) {
	return s.Walk(s.cur.Pos(), b.End(), b.Depth+1)
}

// Walk reads the sibling boxes in [start, end), dispatching each to its
// decoder, and returns how many it visited.
//
// A box that claims to extend past end aborts the walk with a
// *BoxOverflowError. After every decoder the cursor is moved to the end of
// the box, whatever the decoder consumed. A box with size 0 runs to end of
// file and ends the walk.
//
// Fewer than 8 bytes left at a header boundary end the walk without error,
// at any depth.
func (s *Session) Walk(start, end int64, depth int) (int, error) {
	c := s.cur
	c.seek(start)
	prevLimit := c.SetLimit(end)
	defer c.SetLimit(prevLimit)

	count := 0
	for c.Pos() < end {
		h, err := ReadHeader(c)
		if err != nil {
			if errors.Is(err, ErrTruncatedHeader) {
				s.log.Warn("trailing bytes after last box", "offset", c.Pos(), "bytes", end-c.Pos(), "depth", depth)
				break
			}
			return count, err
		}
		// Offset+Size may not fit in an int64 for a 64-bit size
		if h.Size > end-h.Offset {
			claimed := int64(math.MaxInt64)
			if h.Size <= math.MaxInt64-h.Offset {
				claimed = h.End()
			}
			return count, &BoxOverflowError{
				Type:     h.Type,
				Offset:   h.Offset,
				End:      claimed,
				RangeEnd: end,
			}
		}

		count++
		s.rep.Box(depth, h)
		if err := s.dispatch(h, depth); err != nil {
			return count, err
		}
		s.rep.EndBox(depth, h)

		if h.ToEOF {
			s.log.Debug("box runs to end of file", "type", h.Type.String(), "offset", h.Offset)
			break
		}
	}
	return count, nil
}

// dispatch runs the decoder for h with the cursor confined to the box, then
// moves the cursor to the end of the box.
func (s *Session) dispatch(h Header, depth int) error {
	c := s.cur
	prev := c.SetLimit(h.End())
	err := s.registry.Lookup(h.Type).DecodeBox(s, Box{Header: h, Depth: depth})
	c.SetLimit(prev)
	if err != nil {
		return fmt.Errorf("box %q at offset %d: %w", h.Type, h.Offset, err)
	}

	if pos := c.Pos(); pos != h.End() {
		s.log.Debug("resync after decode", "type", h.Type.String(), "offset", h.Offset, "unread", h.End()-pos)
	}
	c.seek(h.End())
	return nil
}
