// Package yatp solves the "yet another tree problem" query: for a weighted
// tree whose nodes carry penalties, it computes
//
//	Σ_s min_v ( d(s,v) + p_v · p_s )
//
// where v ranges over every node, s itself included (the empty path costs
// p_s²).
//
// For a fixed anchor c the cost of reaching v through c, seen as a function
// of x = p_s, is the affine line d(c,v) + p_v·x. The minimum over a set of
// candidates is therefore the lower envelope of those lines, which is built
// with a monotone stack after a slope sort and evaluated by binary search.
// Centroid decomposition supplies the anchors: every path s→v passes through
// the first centroid that separates (or equals) its endpoints, and paths that
// fold back through a centroid are only ever overestimates.
//
// Tree Representation
// ===================
//
// Edges are undirected on input but the tree is rooted at node 1 right away.
// Each node keeps its parent, the weight of the edge to its parent and its
// children (CSR layout: one offsets slice and one flat child slice). No edge
// record carries ownership flags; the neighbours of u are its children plus
// its parent.
package yatp

import (
	"errors"
	"fmt"
)

// MaxWeight is the largest accepted edge weight. With at most MaxInt32 nodes
// a path length stays below 2.2e18, so distances never overflow int64.
const MaxWeight = 1_000_000_000

var (
	ErrNodeRange    = errors.New("yatp: node id out of range")
	ErrWeightRange  = errors.New("yatp: edge weight out of range")
	ErrPenaltyRange = errors.New("yatp: negative penalty")
	ErrNotATree     = errors.New("yatp: edges do not form a tree")
	ErrEmpty        = errors.New("yatp: tree has no nodes")
	ErrOverflow     = errors.New("yatp: arithmetic overflow")
)

// Edge is an undirected weighted edge between 1-indexed nodes U and V.
type Edge struct {
	U, V int
	W    int64
}

// Tree is a rooted weighted tree with per-node penalties. Nodes are
// 0-indexed internally; node 0 is the root.
type Tree struct {
	penalty  []int64
	parent   []int   // -1 for the root
	weight   []int64 // weight of the edge to the parent, 0 for the root
	childOff []int   // children of u are children[childOff[u]:childOff[u+1]]
	children []int
}

// NewTree validates the input and roots the tree at node 1. The penalties
// slice is indexed from 0 (penalties[0] belongs to node 1).
func NewTree(penalties []int64, edges []Edge) (*Tree, error) {
	n := len(penalties)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(edges) != n-1 {
		return nil, fmt.Errorf("%w: %d nodes need %d edges, got %d", ErrNotATree, n, n-1, len(edges))
	}

	for i, p := range penalties {
		if p < 0 {
			return nil, fmt.Errorf("%w: node %d has penalty %d", ErrPenaltyRange, i+1, p)
		}
	}

	// Undirected adjacency in CSR form, only needed until the tree is rooted.
	deg := make([]int, n+1)
	for _, e := range edges {
		if e.U < 1 || e.U > n || e.V < 1 || e.V > n {
			return nil, fmt.Errorf("%w: edge (%d, %d) with %d nodes", ErrNodeRange, e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: self-loop at node %d", ErrNotATree, e.U)
		}
		if e.W < 1 || e.W > MaxWeight {
			return nil, fmt.Errorf("%w: edge (%d, %d) has weight %d", ErrWeightRange, e.U, e.V, e.W)
		}
		deg[e.U]++
		deg[e.V]++
	}

	adjOff := make([]int, n+1)
	for u := 0; u < n; u++ {
		adjOff[u+1] = adjOff[u] + deg[u+1]
	}
	adjTo := make([]int, 2*len(edges))
	adjW := make([]int64, 2*len(edges))
	fill := append([]int(nil), adjOff[:n]...)
	for _, e := range edges {
		u, v := e.U-1, e.V-1
		adjTo[fill[u]], adjW[fill[u]] = v, e.W
		fill[u]++
		adjTo[fill[v]], adjW[fill[v]] = u, e.W
		fill[v]++
	}

	t := &Tree{
		penalty: append([]int64(nil), penalties...),
		parent:  make([]int, n),
		weight:  make([]int64, n),
	}

	for i := range t.parent {
		t.parent[i] = -2 // unvisited
	}
	t.parent[0] = -1
	order := make([]int, 1, n)
	for head := 0; head < len(order); head++ {
		u := order[head]
		for k := adjOff[u]; k < adjOff[u+1]; k++ {
			v := adjTo[k]
			if v == t.parent[u] {
				continue
			}
			if t.parent[v] != -2 {
				return nil, fmt.Errorf("%w: cycle through node %d", ErrNotATree, v+1)
			}
			t.parent[v] = u
			t.weight[v] = adjW[k]
			order = append(order, v)
		}
	}
	if len(order) != n {
		return nil, fmt.Errorf("%w: %d of %d nodes reachable from node 1", ErrNotATree, len(order), n)
	}

	t.childOff = make([]int, n+1)
	for v := 1; v < n; v++ {
		t.childOff[t.parent[v]+1]++
	}
	for u := 0; u < n; u++ {
		t.childOff[u+1] += t.childOff[u]
	}
	t.children = make([]int, n-1)
	copy(fill, t.childOff[:n])
	for _, v := range order[1:] {
		p := t.parent[v]
		t.children[fill[p]] = v
		fill[p]++
	}

	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.penalty)
}

// Penalty returns the penalty of the 0-indexed node u.
func (t *Tree) Penalty(u int) int64 {
	return t.penalty[u]
}

// Parent returns the parent of u and the weight of the connecting edge.
// The root reports (-1, 0).
func (t *Tree) Parent(u int) (int, int64) {
	return t.parent[u], t.weight[u]
}

// Children returns the children of u. The slice must not be modified.
func (t *Tree) Children(u int) []int {
	return t.children[t.childOff[u]:t.childOff[u+1]]
}
