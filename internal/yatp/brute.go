package yatp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// BruteForceLimit caps the node count accepted by BruteForce. Below it
// every path length is an integer under 2^53 and survives the float64
// round trip through gonum exactly.
const BruteForceLimit = 2000

// ErrTooLarge is returned by BruteForce for trees above BruteForceLimit.
var ErrTooLarge = errors.New("yatp: tree too large for brute force")

// BruteForce evaluates the same sum as Solve by running a shortest path
// search from every node. It is quadratic and exists to cross-check Solve.
func BruteForce(t *Tree) (int64, error) {
	n := t.Len()
	if n > BruteForceLimit {
		return 0, fmt.Errorf("%w: %d nodes, limit %d", ErrTooLarge, n, BruteForceLimit)
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for u := 0; u < n; u++ {
		g.AddNode(simple.Node(u))
	}
	for v := 1; v < n; v++ {
		p, w := t.Parent(v)
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(v), T: simple.Node(p), W: float64(w)})
	}

	var total int64
	for s := 0; s < n; s++ {
		sp := path.DijkstraFrom(simple.Node(s), g)
		ps := t.Penalty(s)

		best := int64(math.MaxInt64)
		for v := 0; v < n; v++ {
			dist := int64(sp.WeightTo(int64(v)))
			prod, ok := mulChecked(t.Penalty(v), ps)
			if !ok {
				return 0, fmt.Errorf("%w: p_%d·p_%d", ErrOverflow, v+1, s+1)
			}
			cost, ok := addChecked(dist, prod)
			if !ok {
				return 0, fmt.Errorf("%w: d(%d,%d) + p·p", ErrOverflow, s+1, v+1)
			}
			best = min(best, cost)
		}

		var ok bool
		if total, ok = addChecked(total, best); !ok {
			return 0, fmt.Errorf("%w: running sum at node %d", ErrOverflow, s+1)
		}
	}
	return total, nil
}
