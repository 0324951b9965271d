// Package workload generates seeded random inputs for the fenwick and yatp
// engines. The same seed always produces the same bytes.
package workload

import (
	"errors"
	"fmt"
	"io"

	rng "github.com/leesper/go_rng"

	"arena.lopezb.com/internal/fastio"
	"arena.lopezb.com/internal/yatp"
)

const (
	// MaxValue bounds the magnitude of generated increments.
	MaxValue = 1_000_000_000
	// MaxPenalty bounds generated node penalties so p_u·p_v stays far from
	// overflow.
	MaxPenalty = 1_000_000
)

var ErrShape = errors.New("workload: unknown tree shape")

// Shape selects the topology produced by Tree.
type Shape string

const (
	ShapeRandom Shape = "random"
	ShapeLine   Shape = "line"
	ShapeStar   Shape = "star"
)

// ParseShape maps a flag value to a Shape.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(s); sh {
	case ShapeRandom, ShapeLine, ShapeStar:
		return sh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrShape, s)
}

// Fenwick writes a fenwick input with an array of length l and ops
// operations, about half of them queries.
func Fenwick(w io.Writer, seed int64, l, ops int) error {
	if l < 0 || ops < 0 {
		return fmt.Errorf("workload: negative size (l=%d, ops=%d)", l, ops)
	}

	g := rng.NewUniformGenerator(seed)
	out := fastio.NewWriter(w, 0)

	out.Int64(int64(l))
	out.Byte(' ')
	out.Line(int64(ops))

	for i := 0; i < ops; i++ {
		if l == 0 || g.Int64n(2) == 0 {
			out.String("? ")
			out.Line(g.Int64n(int64(l) + 1))
			continue
		}
		out.String("+ ")
		out.Int64(g.Int64n(int64(l)))
		out.Byte(' ')
		out.Line(g.Int64Range(-MaxValue, MaxValue+1))
	}

	return out.Flush()
}

// TreeCase is a generated yatp input before validation.
type TreeCase struct {
	Penalties []int64
	Edges     []yatp.Edge
}

// Build validates the case into a yatp.Tree.
func (c TreeCase) Build() (*yatp.Tree, error) {
	return yatp.NewTree(c.Penalties, c.Edges)
}

// WriteTo writes the case in the yatp input format.
func (c TreeCase) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	out := fastio.NewWriter(cw, 0)

	out.Line(int64(len(c.Penalties)))
	for i, p := range c.Penalties {
		if i > 0 {
			out.Byte(' ')
		}
		out.Int64(p)
	}
	out.Byte('\n')

	for _, e := range c.Edges {
		out.Int64(int64(e.U))
		out.Byte(' ')
		out.Int64(int64(e.V))
		out.Byte(' ')
		out.Line(e.W)
	}

	err := out.Flush()
	return cw.n, err
}

// Tree generates an n-node tree of the given shape with penalties in
// [0, maxPenalty] and weights in [1, maxWeight]. Node labels are shuffled so
// the root is not always node 1.
func Tree(seed int64, n int, shape Shape, maxPenalty, maxWeight int64) (TreeCase, error) {
	if n < 1 {
		return TreeCase{}, fmt.Errorf("workload: tree needs at least one node, got %d", n)
	}
	if maxPenalty < 0 || maxWeight < 1 || maxWeight > yatp.MaxWeight {
		return TreeCase{}, fmt.Errorf("workload: bad ranges (penalty ≤ %d, weight ≤ %d)", maxPenalty, maxWeight)
	}

	g := rng.NewUniformGenerator(seed)

	label := make([]int, n)
	for i := range label {
		label[i] = i + 1
	}
	for i := n - 1; i > 0; i-- {
		j := int(g.Int64n(int64(i + 1)))
		label[i], label[j] = label[j], label[i]
	}

	c := TreeCase{
		Penalties: make([]int64, n),
		Edges:     make([]yatp.Edge, 0, n-1),
	}
	for i := range c.Penalties {
		c.Penalties[i] = g.Int64n(maxPenalty + 1)
	}

	for v := 1; v < n; v++ {
		var p int
		switch shape {
		case ShapeRandom:
			p = int(g.Int64n(int64(v)))
		case ShapeLine:
			p = v - 1
		case ShapeStar:
			p = 0
		default:
			return TreeCase{}, fmt.Errorf("%w: %q", ErrShape, shape)
		}

		e := yatp.Edge{U: label[v], V: label[p], W: g.Int64Range(1, maxWeight+1)}
		if g.Int64n(2) == 0 {
			e.U, e.V = e.V, e.U
		}
		c.Edges = append(c.Edges, e)
	}

	return c, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
