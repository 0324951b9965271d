package fastio

import (
	"fmt"
	"io"
	"math"
)

// CutInt64 parses the first whitespace-separated integer of b and returns
// it along with the bytes after it. It returns io.EOF when b holds nothing
// but whitespace. Offsets in a *SyntaxError are relative to b.
//
// CutInt64 is meant for lines already framed by Scanner.Line, where a
// protocol needs to look at the first byte before deciding how to read the
// rest.
func CutInt64(b []byte) (int64, []byte, error) {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	if i == len(b) {
		return 0, nil, io.EOF
	}
	start := i

	neg := false
	if b[i] == '-' || b[i] == '+' {
		neg = b[i] == '-'
		i++
	}

	var acc uint64
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	digits := 0
	for ; i < len(b) && !isSpace(b[i]); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, nil, &SyntaxError{Offset: int64(i), Msg: fmt.Sprintf("unexpected byte %q in integer", c)}
		}
		d := uint64(c - '0')
		if acc > (limit-d)/10 {
			return 0, nil, fmt.Errorf("%w at offset %d", ErrOverflow, start)
		}
		acc = acc*10 + d
		digits++
	}
	if digits == 0 {
		return 0, nil, &SyntaxError{Offset: int64(start), Msg: "expected integer"}
	}

	if neg {
		return -int64(acc), b[i:], nil
	}
	return int64(acc), b[i:], nil
}
