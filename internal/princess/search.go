package princess

import "fmt"

// State is the phase of a Search.
type State int

const (
	Searching State = iota
	Answered
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Answered:
		return "answered"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Search is the solver side of one game. The pea is always inside the window
// [offset, offset+m); every query names a prefix of the window.
type Search struct {
	sc    Scenario
	table *Table

	offset int64
	m      int64

	spent   int64 // nights slept so far
	owed    int64 // recovery nights of the last hit, paid before the next query
	queries int64
	pending int64 // size of the outstanding query, 0 when none

	state State
}

// NewSearch starts a game for sc.
func NewSearch(sc Scenario) (*Search, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	s := &Search{
		sc:    sc,
		table: sc.Table(),
		m:     sc.Mattresses,
	}
	s.settle()
	return s, nil
}

// budget is the number of nights still free for planning.
func (s *Search) budget() int64 {
	return s.sc.Nights - s.spent - s.owed
}

func (s *Search) settle() {
	if s.m == 1 || s.budget() <= 0 {
		s.state = Answered
	}
}

// Next returns the next query as the half-open index range [lo, hi). When
// done is true no query is needed and Answer holds the result. Calling Next
// again before Observe returns the same query.
func (s *Search) Next() (lo, hi int64, done bool) {
	if s.state == Answered {
		return s.offset, s.offset + 1, true
	}
	if s.pending == 0 {
		s.pending = s.table.Split(s.m, s.budget())
	}
	return s.offset, s.offset + s.pending, false
}

// Observe records the judge's answer to the outstanding query.
func (s *Search) Observe(hit bool) error {
	if s.pending == 0 {
		return ErrNoQuery
	}
	q := s.pending
	s.pending = 0

	s.spent += s.owed + 1
	s.owed = 0
	s.queries++
	if s.spent > s.sc.Nights {
		return fmt.Errorf("%w: %d of %d nights after query %d", ErrBudgetExceeded, s.spent, s.sc.Nights, s.queries)
	}

	if hit {
		s.m = q
		s.owed = s.sc.Penalty
	} else {
		s.offset += q
		s.m -= q
	}
	s.settle()
	return nil
}

// Answer returns the lowest index of the window. Once the state is Answered
// with a one-mattress window this is the pea; if the budget ran out first it
// is a guess.
func (s *Search) Answer() int64 {
	return s.offset
}

// State returns the current phase.
func (s *Search) State() State {
	return s.state
}

// Spent returns the nights slept so far. Recovery nights owed by the last
// hit are not included until another query pays them.
func (s *Search) Spent() int64 {
	return s.spent
}

// Queries returns the number of answered queries.
func (s *Search) Queries() int64 {
	return s.queries
}

// Window returns the current candidate range as offset and size.
func (s *Search) Window() (offset, m int64) {
	return s.offset, s.m
}
