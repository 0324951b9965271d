// Package princess plays the Princess and the Pea search: one of M
// mattresses hides a pea, and every night the princess sleeps on a subset of
// them and learns whether the pea was underneath. A night on the pea costs
// S extra nights of recovery before she can sleep again. The goal is to name
// the pea's mattress within N nights.
//
// Budget accounting
// =================
//
// Each query costs one night. A hit leaves S recovery nights owed, settled
// before the next query; once the answer is known no further night is spent,
// so the debt of a final hit is never paid. Planning works with the budget
// N − spent − owed.
//
// Capacity
// ========
//
// T(b) is the largest window that can be resolved with b planning nights:
//
//	T(b) = 1                              b ≤ 0
//	T(b) = T(b−1) + max(1, T(b−1−S))      b > 0
//
// A query of size q is safe when the miss side fits in T(b−1) and the hit
// side fits in T(b−1−S), or q = 1 (a single-mattress hit ends the game). The
// bound is tight against a judge that picks the answer after seeing the
// query.
package princess

import "math"

// Table holds T(b) for one penalty S and b in [0, limit].
type Table struct {
	penalty int64
	t       []int64
}

// NewTable tabulates T up to limit. Values saturate at math.MaxInt64.
func NewTable(limit, penalty int64) *Table {
	if limit < 0 {
		limit = 0
	}
	tab := &Table{penalty: penalty, t: make([]int64, limit+1)}
	tab.t[0] = 1
	for b := int64(1); b <= limit; b++ {
		hit := max(1, tab.At(b-1-penalty))
		prev := tab.t[b-1]
		if prev > math.MaxInt64-hit {
			tab.t[b] = math.MaxInt64
		} else {
			tab.t[b] = prev + hit
		}
	}
	return tab
}

// Limit returns the largest tabulated budget.
func (t *Table) Limit() int64 {
	return int64(len(t.t) - 1)
}

// Penalty returns S.
func (t *Table) Penalty() int64 {
	return t.penalty
}

// At returns T(b). Budgets past the limit report T(limit); callers size the
// table so that never matters.
func (t *Table) At(b int64) int64 {
	switch {
	case b <= 0:
		return 1
	case b >= int64(len(t.t)):
		return t.t[len(t.t)-1]
	}
	return t.t[b]
}

// Need returns the smallest tabulated budget b with T(b) ≥ m, or
// Limit()+1 when no tabulated budget suffices.
func (t *Table) Need(m int64) int64 {
	lo, hi := int64(0), int64(len(t.t))
	for lo < hi {
		mid := lo + (hi-lo)/2
		if t.t[mid] >= m {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Split returns the size of the next query for a window of m ≥ 2 mattresses
// and a planning budget of b nights. The result is always in [1, m−1].
//
//	m ≤ b+1   one mattress at a time; every miss still leaves enough nights
//	S = 0     halve the window
//	otherwise the largest hit side the remaining budget can still resolve
func (t *Table) Split(m, b int64) int64 {
	if m < 2 {
		panic("princess: split of a window with fewer than two mattresses")
	}

	var q int64
	switch {
	case m-1 <= b:
		q = 1
	case t.penalty == 0:
		q = m - m/2
	default:
		q = max(1, t.At(b-1-t.penalty))
	}
	return min(max(q, 1), m-1)
}
