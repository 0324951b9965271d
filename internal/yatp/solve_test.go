package yatp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveScenarios(t *testing.T) {
	tests := []struct {
		name      string
		penalties []int64
		edges     []Edge
		want      int64
	}{
		{
			name:      "Single node pays its own square",
			penalties: []int64{12},
			want:      144,
		},
		{
			name:      "Five nodes",
			penalties: []int64{9, 7, 1, 1, 9},
			edges:     []Edge{{3, 2, 8}, {5, 2, 10}, {4, 3, 10}, {2, 1, 2}},
			want:      63,
		},
		{
			name:      "Two nodes prefer the neighbour",
			penalties: []int64{10, 1},
			edges:     []Edge{{1, 2, 5}},
			// node 1: min(100, 5+10) = 15; node 2: min(1, 5+10) = 1
			want: 16,
		},
		{
			name:      "Zero penalty flattens the line",
			penalties: []int64{0, 4},
			edges:     []Edge{{1, 2, 3}},
			// node 1: 0; node 2: min(16, 3+0) = 3
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewTree(tt.penalties, tt.edges)
			require.NoError(t, err)

			got, err := Solve(tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			brute, err := BruteForce(tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, brute)
		})
	}
}

func TestSolveLine(t *testing.T) {
	const n = 100

	penalties := make([]int64, n)
	edges := make([]Edge, 0, n-1)
	for i := range penalties {
		penalties[i] = int64(i + 1)
		if i > 0 {
			edges = append(edges, Edge{U: i, V: i + 1, W: 1})
		}
	}

	tree, err := NewTree(penalties, edges)
	require.NoError(t, err)

	got, err := Solve(tree)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got)
}

func TestSolveStar(t *testing.T) {
	const (
		leaves      = 50
		rootPenalty = 1
		leafPenalty = 10
		w           = 3
	)

	penalties := []int64{rootPenalty}
	var edges []Edge
	for i := 0; i < leaves; i++ {
		penalties = append(penalties, leafPenalty)
		edges = append(edges, Edge{U: 1, V: i + 2, W: w})
	}

	tree, err := NewTree(penalties, edges)
	require.NoError(t, err)

	leaf := min(int64(leafPenalty*leafPenalty), w+rootPenalty*leafPenalty)
	root := min(int64(rootPenalty*rootPenalty), w+leafPenalty*rootPenalty)
	want := leaves*leaf + root

	got, err := Solve(tree)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMinima(t *testing.T) {
	tree, err := NewTree([]int64{9, 7, 1, 1, 9}, []Edge{{3, 2, 8}, {5, 2, 10}, {4, 3, 10}, {2, 1, 2}})
	require.NoError(t, err)

	minima, err := Minima(tree)
	require.NoError(t, err)
	require.Len(t, minima, 5)

	// Every node can reach node 3 or 4 (penalty 1) or pay its own square.
	assert.Equal(t, []int64{19, 15, 1, 1, 27}, minima)
}

func TestNewTreeErrors(t *testing.T) {
	tests := []struct {
		name      string
		penalties []int64
		edges     []Edge
		wantErr   error
	}{
		{name: "Empty", wantErr: ErrEmpty},
		{name: "Too few edges", penalties: []int64{1, 1, 1}, edges: []Edge{{1, 2, 1}}, wantErr: ErrNotATree},
		{name: "Node out of range", penalties: []int64{1, 1}, edges: []Edge{{1, 3, 1}}, wantErr: ErrNodeRange},
		{name: "Zero weight", penalties: []int64{1, 1}, edges: []Edge{{1, 2, 0}}, wantErr: ErrWeightRange},
		{name: "Huge weight", penalties: []int64{1, 1}, edges: []Edge{{1, 2, MaxWeight + 1}}, wantErr: ErrWeightRange},
		{name: "Negative penalty", penalties: []int64{1, -1}, edges: []Edge{{1, 2, 1}}, wantErr: ErrPenaltyRange},
		{name: "Self loop", penalties: []int64{1, 1}, edges: []Edge{{2, 2, 1}}, wantErr: ErrNotATree},
		{name: "Cycle and island", penalties: []int64{1, 1, 1, 1}, edges: []Edge{{1, 2, 1}, {2, 3, 1}, {3, 1, 1}}, wantErr: ErrNotATree},
		{name: "Duplicate edge", penalties: []int64{1, 1, 1}, edges: []Edge{{1, 2, 1}, {2, 1, 1}}, wantErr: ErrNotATree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTree(tt.penalties, tt.edges)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRootedShape(t *testing.T) {
	tree, err := NewTree([]int64{1, 2, 3, 4}, []Edge{{2, 1, 5}, {3, 2, 6}, {4, 2, 7}})
	require.NoError(t, err)

	p, w := tree.Parent(0)
	assert.Equal(t, -1, p)
	assert.Equal(t, int64(0), w)

	p, w = tree.Parent(3)
	assert.Equal(t, 1, p)
	assert.Equal(t, int64(7), w)

	assert.Equal(t, []int{1}, tree.Children(0))
	assert.ElementsMatch(t, []int{2, 3}, tree.Children(1))
	assert.Empty(t, tree.Children(2))
}

func TestParse(t *testing.T) {
	input := "5\n9 7 1 1 9\n3 2 8\n5 2 10\n4 3 10\n2 1 2\n"

	tree, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, tree.Len())

	got, err := Solve(tree)
	require.NoError(t, err)
	assert.Equal(t, int64(63), got)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("3\n1 2 3\n1 2 5\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("2\n1 x\n1 2 5\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestSolveOverflow(t *testing.T) {
	// p² alone exceeds int64, and so does the path through the neighbour.
	tree, err := NewTree([]int64{1 << 32, 1 << 32}, []Edge{{1, 2, 1}})
	require.NoError(t, err)

	_, err = Solve(tree)
	assert.ErrorIs(t, err, ErrOverflow)
}
