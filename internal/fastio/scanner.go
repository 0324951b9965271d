// Package fastio implements the byte-level input scanner and decimal writer
// shared by the contest engines.
//
// Why not bufio.Scanner?
// The Fenwick engine has to chew through several million tokens within a
// strict time budget. bufio.Scanner with ScanWords hands back a fresh token
// per call and strconv.ParseInt wants a string, which costs an allocation or
// a copy per token. Scanner below keeps one growable block, parses integers
// straight out of it and never allocates on the hot path.
//
// Interactive use
// ===============
//
// The same Scanner drives the Princess protocol, where the peer only sends
// the next line after reading ours. Refills therefore call Read once and take
// whatever is available instead of insisting on a full block; a blocking
// io.ReadFull here would deadlock against the judge.
//
// Limits
// ======
//
// Line() refuses lines longer than the configured maximum. A peer that never
// sends '\n' cannot make the buffer grow without bound.
package fastio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	// DefaultBufferSize is the initial block size.
	DefaultBufferSize = 1 << 16

	// DefaultMaxLineSize bounds Line(). Princess queries list up to a few
	// million indices on extreme inputs, so the limit is generous.
	DefaultMaxLineSize = 64 << 20
)

var (
	// ErrSyntax is matched (errors.Is) by every *SyntaxError.
	ErrSyntax = errors.New("fastio: syntax error")

	// ErrOverflow reports an integer token that does not fit in 64 bits.
	ErrOverflow = errors.New("fastio: integer overflow")

	// ErrLineTooLong reports a line exceeding the scanner's limit.
	ErrLineTooLong = errors.New("fastio: line too long")
)

// SyntaxError pins a malformed token to its byte offset in the stream.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("fastio: offset %d: %s", e.Offset, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) hold for every SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Scanner reads whitespace-separated ASCII tokens from an io.Reader.
type Scanner struct {
	r       io.Reader
	buf     []byte
	pos     int   // next unread byte in buf
	end     int   // end of valid data in buf
	base    int64 // stream offset of buf[0]
	err     error // sticky read error, io.EOF included
	maxLine int
}

// NewScanner returns a Scanner with an initial block of size bytes.
func NewScanner(r io.Reader, size int) *Scanner {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Scanner{
		r:       r,
		buf:     make([]byte, size),
		maxLine: DefaultMaxLineSize,
	}
}

// SetMaxLineSize changes the limit enforced by Line.
func (s *Scanner) SetMaxLineSize(n int) {
	s.maxLine = n
}

// Offset returns the stream offset of the next unread byte.
func (s *Scanner) Offset() int64 {
	return s.base + int64(s.pos)
}

// Buffered returns the number of bytes read from the source but not yet
// consumed.
func (s *Scanner) Buffered() int {
	return s.end - s.pos
}

// fill pulls more bytes from the source. Unconsumed bytes are moved to the
// front of the block first; the block only grows when it is already full of
// unconsumed data. It reports whether any new byte arrived.
func (s *Scanner) fill() bool {
	if s.err != nil {
		return false
	}

	if s.pos > 0 {
		n := copy(s.buf, s.buf[s.pos:s.end])
		s.base += int64(s.pos)
		s.pos = 0
		s.end = n
	}

	if s.end == len(s.buf) {
		grown := make([]byte, 2*len(s.buf))
		copy(grown, s.buf[:s.end])
		s.buf = grown
	}

	// A well-behaved reader may return (0, nil); retry a bounded number of
	// times like bufio does before giving up.
	for i := 0; i < 100; i++ {
		n, err := s.r.Read(s.buf[s.end:])
		if n < 0 {
			panic("fastio: reader returned negative count")
		}
		s.end += n
		if err != nil {
			s.err = err
			return n > 0
		}
		if n > 0 {
			return true
		}
	}
	s.err = io.ErrNoProgress
	return false
}

// readErr returns the sticky error, defaulting to io.EOF.
func (s *Scanner) readErr() error {
	if s.err == nil {
		return io.EOF
	}
	return s.err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\v' || c == '\f'
}

// skipSpace advances to the next non-space byte. It returns io.EOF (or the
// underlying read error) when the stream ends first.
func (s *Scanner) skipSpace() error {
	for {
		for s.pos < s.end {
			if !isSpace(s.buf[s.pos]) {
				return nil
			}
			s.pos++
		}
		if !s.fill() {
			return s.readErr()
		}
	}
}

// peek returns the next byte without consuming it; ok is false at the end
// of the stream.
func (s *Scanner) peek() (byte, bool) {
	if s.pos == s.end && !s.fill() {
		return 0, false
	}
	return s.buf[s.pos], true
}

// Byte returns the next non-space byte. It is the operation-tag reader of
// the Fenwick stream ('+' or '?').
func (s *Scanner) Byte() (byte, error) {
	if err := s.skipSpace(); err != nil {
		return 0, err
	}
	c := s.buf[s.pos]
	s.pos++
	return c, nil
}

// Int64 parses the next token as a signed decimal integer. A clean end of
// stream before the token starts yields io.EOF; anything else that is not
// an integer terminated by whitespace or EOF is a *SyntaxError.
func (s *Scanner) Int64() (int64, error) {
	if err := s.skipSpace(); err != nil {
		return 0, err
	}
	start := s.Offset()

	neg := false
	if c := s.buf[s.pos]; c == '-' || c == '+' {
		neg = c == '-'
		s.pos++
	}

	var acc uint64
	digits := 0
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}

	for {
		c, ok := s.peek()
		if !ok {
			break
		}
		if c < '0' || c > '9' {
			if !isSpace(c) {
				return 0, &SyntaxError{Offset: s.Offset(), Msg: fmt.Sprintf("unexpected byte %q in integer", c)}
			}
			break
		}
		d := uint64(c - '0')
		if acc > (limit-d)/10 {
			return 0, fmt.Errorf("%w at offset %d", ErrOverflow, start)
		}
		acc = acc*10 + d
		digits++
		s.pos++
	}

	if digits == 0 {
		return 0, &SyntaxError{Offset: start, Msg: "expected integer"}
	}

	if neg {
		// acc may be exactly 1<<63 here; the conversion wraps to MinInt64.
		return -int64(acc), nil
	}
	return int64(acc), nil
}

// Int is Int64 narrowed to int.
func (s *Scanner) Int() (int, error) {
	v, err := s.Int64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt || v < math.MinInt {
		return 0, ErrOverflow
	}
	return int(v), nil
}

// Line returns the bytes up to (excluding) the next '\n', with a trailing
// '\r' stripped. The slice aliases the internal block and is only valid
// until the next call. A final line without '\n' is returned with a nil
// error; io.EOF is returned only when nothing is left.
func (s *Scanner) Line() ([]byte, error) {
	scanned := 0
	for {
		if i := bytes.IndexByte(s.buf[s.pos+scanned:s.end], '\n'); i >= 0 {
			line := s.buf[s.pos : s.pos+scanned+i]
			s.pos += scanned + i + 1
			if len(line) > s.maxLine {
				return nil, ErrLineTooLong
			}
			return trimCR(line), nil
		}
		scanned = s.end - s.pos
		if scanned > s.maxLine {
			return nil, ErrLineTooLong
		}
		if !s.fill() {
			if s.pos == s.end {
				return nil, s.readErr()
			}
			line := s.buf[s.pos:s.end]
			s.pos = s.end
			return trimCR(line), nil
		}
	}
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}
