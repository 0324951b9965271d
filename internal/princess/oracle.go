package princess

// Oracle decides the judge's answers. Respond is called once per query
// with the queried indices (validated, distinct, in range) and the nights
// left after this query is paid for. Accept decides the final "! x".
type Oracle interface {
	Respond(query []int64, remaining int64) bool
	Accept(x int64) bool
}

// FixedOracle hides the pea under one mattress for the whole game.
type FixedOracle int64

func (p FixedOracle) Respond(query []int64, _ int64) bool {
	for _, i := range query {
		if i == int64(p) {
			return true
		}
	}
	return false
}

func (p FixedOracle) Accept(x int64) bool {
	return x == int64(p)
}

// Adversary commits to no pea at all. It keeps the set of mattresses still
// consistent with its answers and, for each query, picks the answer whose
// remaining game needs more nights according to the capacity table. The
// final answer is accepted only when it names the last consistent mattress;
// otherwise the pea is claimed to be under another one.
type Adversary struct {
	penalty int64
	table   *Table
	alive   []bool
	count   int64
	mark    []bool
}

// NewAdversary returns an adversary for sc. sc must be valid.
func NewAdversary(sc Scenario) *Adversary {
	a := &Adversary{
		penalty: sc.Penalty,
		table:   NewTable(sc.Mattresses, sc.Penalty),
		alive:   make([]bool, sc.Mattresses),
		count:   sc.Mattresses,
		mark:    make([]bool, sc.Mattresses),
	}
	for i := range a.alive {
		a.alive[i] = true
	}
	return a
}

// Candidates returns how many mattresses are still consistent.
func (a *Adversary) Candidates() int64 {
	return a.count
}

// cost is the number of planning nights the solver needs after an answer
// that leaves m candidates, including the recovery owed by a hit.
func (a *Adversary) cost(m int64, hit bool) int64 {
	if m <= 1 {
		return 0
	}
	c := a.table.Need(m)
	if hit {
		c += a.penalty
	}
	return c
}

func (a *Adversary) Respond(query []int64, _ int64) bool {
	var in int64
	for _, i := range query {
		if a.alive[i] {
			in++
		}
	}
	out := a.count - in

	var hit bool
	switch {
	case in == 0:
		hit = false
	case out == 0:
		hit = true
	default:
		ch, cm := a.cost(in, true), a.cost(out, false)
		hit = ch > cm || (ch == cm && in > out)
	}

	if hit {
		for _, i := range query {
			a.mark[i] = true
		}
		for i, ok := range a.alive {
			if ok && !a.mark[i] {
				a.alive[i] = false
			}
		}
		for _, i := range query {
			a.mark[i] = false
		}
		a.count = in
	} else {
		for _, i := range query {
			a.alive[i] = false
		}
		a.count = out
	}
	return hit
}

func (a *Adversary) Accept(x int64) bool {
	return a.count == 1 && x >= 0 && x < int64(len(a.alive)) && a.alive[x]
}
