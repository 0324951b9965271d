package workload

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena.lopezb.com/internal/fastio"
	"arena.lopezb.com/internal/yatp"
)

func TestFenwickDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Fenwick(&a, 7, 100, 500))
	require.NoError(t, Fenwick(&b, 7, 100, 500))
	assert.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.NoError(t, Fenwick(&c, 8, 100, 500))
	assert.NotEqual(t, a.String(), c.String())
}

func TestFenwickWellFormed(t *testing.T) {
	const l, ops = 37, 1000

	var buf bytes.Buffer
	require.NoError(t, Fenwick(&buf, 99, l, ops))

	s := fastio.NewScanner(&buf, 0)
	gotL, err := s.Int()
	require.NoError(t, err)
	gotK, err := s.Int()
	require.NoError(t, err)
	require.Equal(t, l, gotL)
	require.Equal(t, ops, gotK)

	for i := 0; i < ops; i++ {
		op, err := s.Byte()
		require.NoError(t, err)

		idx, err := s.Int64()
		require.NoError(t, err)

		switch op {
		case '+':
			assert.True(t, idx >= 0 && idx < l, "add index %d", idx)
			v, err := s.Int64()
			require.NoError(t, err)
			assert.True(t, v >= -MaxValue && v <= MaxValue, "value %d", v)
		case '?':
			assert.True(t, idx >= 0 && idx <= l, "query index %d", idx)
		default:
			t.Fatalf("unexpected op %q", op)
		}
	}
}

func TestFenwickEmptyArrayOnlyQueries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fenwick(&buf, 1, 0, 5))
	assert.Equal(t, "0 5\n? 0\n? 0\n? 0\n? 0\n? 0\n", buf.String())
}

func TestTreeShapes(t *testing.T) {
	for _, shape := range []Shape{ShapeRandom, ShapeLine, ShapeStar} {
		t.Run(string(shape), func(t *testing.T) {
			c, err := Tree(3, 200, shape, 50, 1000)
			require.NoError(t, err)
			require.Len(t, c.Penalties, 200)
			require.Len(t, c.Edges, 199)

			for _, p := range c.Penalties {
				assert.True(t, p >= 0 && p <= 50)
			}
			deg := make(map[int]int)
			for _, e := range c.Edges {
				assert.True(t, e.W >= 1 && e.W <= 1000)
				deg[e.U]++
				deg[e.V]++
			}

			_, err = c.Build()
			require.NoError(t, err)

			maxDeg := 0
			for _, d := range deg {
				maxDeg = max(maxDeg, d)
			}
			switch shape {
			case ShapeLine:
				assert.Equal(t, 2, maxDeg)
			case ShapeStar:
				assert.Equal(t, 199, maxDeg)
			}
		})
	}
}

func TestTreeRoundTripsThroughParse(t *testing.T) {
	c, err := Tree(11, 64, ShapeRandom, MaxPenalty, yatp.MaxWeight)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	parsed, err := yatp.Parse(&buf)
	require.NoError(t, err)
	built, err := c.Build()
	require.NoError(t, err)

	want, err := yatp.Solve(built)
	require.NoError(t, err)
	got, err := yatp.Solve(parsed)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTreeErrors(t *testing.T) {
	_, err := Tree(1, 0, ShapeLine, 1, 1)
	assert.Error(t, err)

	_, err = Tree(1, 5, Shape("spiral"), 1, 1)
	assert.ErrorIs(t, err, ErrShape)

	_, err = Tree(1, 5, ShapeLine, 1, yatp.MaxWeight+1)
	assert.Error(t, err)
}

func TestParseShape(t *testing.T) {
	sh, err := ParseShape("star")
	require.NoError(t, err)
	assert.Equal(t, ShapeStar, sh)

	_, err = ParseShape(strings.ToUpper("star"))
	assert.ErrorIs(t, err, ErrShape)
}
