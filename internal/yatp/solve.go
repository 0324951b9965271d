package yatp

import (
	"fmt"
	"math"
)

// Solve returns Σ_s min_v ( d(s,v) + p_v·p_s ) over all nodes s and v of t.
func Solve(t *Tree) (int64, error) {
	minima, err := Minima(t)
	if err != nil {
		return 0, err
	}
	return Sum(minima)
}

// Sum adds up per-node minima, reporting overflow.
func Sum(minima []int64) (int64, error) {
	var total int64
	for s, m := range minima {
		var ok bool
		if total, ok = addChecked(total, m); !ok {
			return 0, fmt.Errorf("%w: running sum at node %d", ErrOverflow, s+1)
		}
	}
	return total, nil
}

// Minima returns, for every 0-indexed node s, min_v ( d(s,v) + p_v·p_s ).
//
// The tree is split by centroid decomposition. For each centroid c the
// lines (p_v, d(c,v)) of its region form one envelope, and every s in the
// region is offered d(c,s) + H(p_s). A path between two nodes on the same
// side of c is overestimated by the detour through c, which never beats
// the exact value found deeper in the decomposition. Running time is
// O(n log² n).
func Minima(t *Tree) ([]int64, error) {
	n := t.Len()
	d := &decomposer{
		t:       t,
		best:    make([]int64, n),
		removed: make([]bool, n),
		size:    make([]int, n),
		heavy:   make([]int, n),
		from:    make([]int, n),
		dist:    make([]int64, n),
		region:  make([]int, 0, n),
		lines:   make([]Line, 0, n),
	}
	for i := range d.best {
		d.best[i] = math.MaxInt64
	}

	pending := []int{0}
	for len(pending) > 0 {
		start := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		c := d.centroid(start)
		if err := d.relax(c); err != nil {
			return nil, err
		}
		d.removed[c] = true

		for _, v := range t.Children(c) {
			if !d.removed[v] {
				pending = append(pending, v)
			}
		}
		if p := t.parent[c]; p >= 0 && !d.removed[p] {
			pending = append(pending, p)
		}
	}

	return d.best, nil
}

// decomposer holds the scratch state of one centroid decomposition. All
// traversals are iterative so path-shaped trees do not grow deep stacks.
type decomposer struct {
	t       *Tree
	best    []int64
	removed []bool
	size    []int
	heavy   []int // largest child-side component size seen from the walk
	from    []int // node the walk arrived from, -1 at the start
	dist    []int64
	region  []int
	lines   []Line
}

// walk collects the live component containing start into d.region in
// discovery order, recording for each node the node it was reached from
// and its distance from start.
func (d *decomposer) walk(start int) {
	t := d.t
	d.region = d.region[:0]
	d.region = append(d.region, start)
	d.from[start] = -1
	d.dist[start] = 0

	for head := 0; head < len(d.region); head++ {
		u := d.region[head]
		for _, v := range t.Children(u) {
			if v != d.from[u] && !d.removed[v] {
				d.from[v] = u
				d.dist[v] = d.dist[u] + t.weight[v]
				d.region = append(d.region, v)
			}
		}
		if p := t.parent[u]; p >= 0 && p != d.from[u] && !d.removed[p] {
			d.from[p] = u
			d.dist[p] = d.dist[u] + t.weight[u]
			d.region = append(d.region, p)
		}
	}
}

// centroid returns a node of the live component containing start whose
// removal leaves no piece larger than half the component.
func (d *decomposer) centroid(start int) int {
	d.walk(start)

	for _, u := range d.region {
		d.size[u] = 1
		d.heavy[u] = 0
	}
	for i := len(d.region) - 1; i > 0; i-- {
		u := d.region[i]
		p := d.from[u]
		d.size[p] += d.size[u]
		if d.size[u] > d.heavy[p] {
			d.heavy[p] = d.size[u]
		}
	}

	total := len(d.region)
	for _, u := range d.region {
		if max(d.heavy[u], total-d.size[u]) <= total/2 {
			return u
		}
	}
	panic("yatp: component without a centroid")
}

// relax offers every node of c's component the best path through c.
func (d *decomposer) relax(c int) error {
	t := d.t
	d.walk(c)

	d.lines = d.lines[:0]
	for _, v := range d.region {
		d.lines = append(d.lines, Line{Slope: t.penalty[v], Intercept: d.dist[v]})
	}
	env := NewEnvelope(d.lines)

	for _, s := range d.region {
		h, err := env.Query(t.penalty[s])
		if err != nil {
			return fmt.Errorf("node %d: %w", s+1, err)
		}
		cand, ok := addChecked(h, d.dist[s])
		if !ok {
			return fmt.Errorf("%w: node %d via centroid %d", ErrOverflow, s+1, c+1)
		}
		if cand < d.best[s] {
			d.best[s] = cand
		}
	}
	return nil
}
