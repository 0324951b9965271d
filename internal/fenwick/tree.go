// Package fenwick provides a signed prefix-sum tree.
//
// A Fenwick tree, or binary indexed tree, keeps a list of counters so that
// both a point update and a prefix sum take O(log n) time while using the
// same amount of memory as the plain array. The value at each slot is the
// sum of a power-of-two sized run of the underlying array ending at that
// slot.
package fenwick

// Tree is a list of int64 counters supporting point increments and prefix
// sums. The zero value is an empty tree.
type Tree struct {
	// The tree slice stores range sums of an underlying array t using
	// 1-based positions shifted down by one. Slot k-1 holds the sum of
	// t[k-lowbit(k)] … t[k-1].
	//
	// For example, the sum of the first 13 elements of t is obtained from
	// 13 = 1101₂: slots 1101₂-1, 1100₂-1 and 1000₂-1 hold t[12],
	// t[8]+…+t[11] and t[0]+…+t[7] respectively.
	tree []int64
}

// New creates a tree of n zero counters.
func New(n int) *Tree {
	return &Tree{tree: make([]int64, n)}
}

// Len returns the number of counters.
func (t *Tree) Len() int {
	return len(t.tree)
}

// Add adds v to the counter at index i. It affects every later Sum(j)
// with j > i.
func (t *Tree) Add(i int, v int64) {
	n := len(t.tree)
	for k := i + 1; k <= n; k += k & -k {
		t.tree[k-1] += v
	}
}

// Sum returns the sum of the counters at indices 0 through i-1. Sum(0) is
// zero and Sum(Len()) is the grand total.
func (t *Tree) Sum(i int) int64 {
	var sum int64
	for k := i; k > 0; k -= k & -k {
		sum += t.tree[k-1]
	}
	return sum
}

// SumRange returns the sum of the counters at indices i through j-1.
func (t *Tree) SumRange(i, j int) int64 {
	var sum int64
	for j > i {
		sum += t.tree[j-1]
		j -= j & -j
	}
	for i > j {
		sum -= t.tree[i-1]
		i -= i & -i
	}
	return sum
}

// Get returns the counter at index i.
func (t *Tree) Get(i int) int64 {
	return t.SumRange(i, i+1)
}
