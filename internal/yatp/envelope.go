package yatp

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// Line is the affine function Intercept + Slope·x. Within this package
// slopes are penalties and intercepts are path lengths, both non-negative.
type Line struct {
	Slope     int64
	Intercept int64
}

// At evaluates the line at x, reporting overflow instead of wrapping.
func (l Line) At(x int64) (int64, bool) {
	prod, ok := mulChecked(l.Slope, x)
	if !ok {
		return 0, false
	}
	return addChecked(prod, l.Intercept)
}

// Piece is an envelope line together with its activation abscissa: the
// smallest integer x ≥ 0 at which it is the minimum.
type Piece struct {
	Line
	From int64
}

// Envelope is the lower envelope of a family of lines over the integers
// x ≥ 0. Pieces are ordered by activation abscissa; slopes strictly decrease
// and activations strictly increase along the slice, and the first piece
// activates at 0.
type Envelope struct {
	pieces []Piece
}

// NewEnvelope builds the lower envelope of lines. The input slice is sorted
// in place. Slopes and intercepts must be non-negative.
func NewEnvelope(lines []Line) *Envelope {
	// Steepest first; among equal slopes the lowest intercept comes first
	// and the others are dropped below.
	slices.SortFunc(lines, func(a, b Line) int {
		if a.Slope != b.Slope {
			if a.Slope > b.Slope {
				return -1
			}
			return 1
		}
		if a.Intercept < b.Intercept {
			return -1
		}
		if a.Intercept > b.Intercept {
			return 1
		}
		return 0
	})

	e := &Envelope{pieces: make([]Piece, 0, len(lines))}
	for i, l := range lines {
		if i > 0 && l.Slope == lines[i-1].Slope {
			continue
		}
		e.push(l)
	}
	return e
}

// push appends a line with a slope strictly smaller than every slope on the
// stack, popping pieces it makes redundant.
func (e *Envelope) push(l Line) {
	for len(e.pieces) > 0 {
		top := e.pieces[len(e.pieces)-1]

		// Flatter and no higher at x = 0: l is below top everywhere.
		if l.Intercept <= top.Intercept {
			e.pieces = e.pieces[:len(e.pieces)-1]
			continue
		}

		from := ceilDiv(l.Intercept-top.Intercept, top.Slope-l.Slope)
		if from <= top.From {
			e.pieces = e.pieces[:len(e.pieces)-1]
			continue
		}

		e.pieces = append(e.pieces, Piece{Line: l, From: from})
		return
	}
	e.pieces = append(e.pieces, Piece{Line: l, From: 0})
}

// Len returns the number of pieces.
func (e *Envelope) Len() int {
	return len(e.pieces)
}

// Pieces returns the pieces in activation order. The slice must not be
// modified.
func (e *Envelope) Pieces() []Piece {
	return e.pieces
}

// Query returns the envelope minimum at x ≥ 0.
func (e *Envelope) Query(x int64) (int64, error) {
	if len(e.pieces) == 0 {
		panic("yatp: query on an empty envelope")
	}
	if x < 0 {
		return 0, fmt.Errorf("yatp: envelope queried at negative abscissa %d", x)
	}

	i := sort.Search(len(e.pieces), func(i int) bool {
		return e.pieces[i].From > x
	}) - 1

	v, ok := e.pieces[i].At(x)
	if !ok {
		return 0, fmt.Errorf("%w: %d + %d·%d", ErrOverflow, e.pieces[i].Intercept, e.pieces[i].Slope, x)
	}
	return v, nil
}

// ceilDiv returns ⌈a/b⌉ for b > 0.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
		return 0, false
	}
	return c, true
}

func addChecked(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}
