package princess

import (
	"errors"
	"fmt"
	"io"

	"arena.lopezb.com/internal/fastio"
)

// Verdict is the judge's record of a finished game.
type Verdict struct {
	Correct bool
	Answer  int64
	Nights  int64
	Queries int64
	Hits    int64
}

// Session is the judge side of one game over a line protocol.
type Session struct {
	sc     Scenario
	oracle Oracle
	in     *fastio.Scanner
	out    *fastio.Writer

	seen  []uint32 // query number that last named each index
	query []int64
	owed  int64
	v     Verdict
}

// NewSession prepares a game of sc judged by oracle. The solver's lines are
// read from r and the judge's lines written to w.
func NewSession(sc Scenario, oracle Oracle, r io.Reader, w io.Writer) *Session {
	in := fastio.NewScanner(r, 0)
	// Seven digits and a separator per index cover M up to MaxMattresses.
	in.SetMaxLineSize(int(min(sc.Mattresses, MaxMattresses))*8 + 64)

	return &Session{
		sc:     sc,
		oracle: oracle,
		in:     in,
		out:    fastio.NewWriter(w, 0),
	}
}

// Run writes the header and judges queries until the solver announces an
// answer. The returned Verdict is filled as far as the game got even when
// an error is returned.
func (s *Session) Run() (Verdict, error) {
	if err := s.sc.Validate(); err != nil {
		return s.v, err
	}
	s.seen = make([]uint32, s.sc.Mattresses)

	s.out.Int64(s.sc.Mattresses)
	s.out.Byte(' ')
	s.out.Int64(s.sc.Nights)
	s.out.Byte(' ')
	s.out.Line(s.sc.Penalty)
	if err := s.out.Flush(); err != nil {
		return s.v, fmt.Errorf("writing header: %w", err)
	}

	for {
		line, err := s.in.Line()
		switch {
		case errors.Is(err, fastio.ErrLineTooLong):
			return s.v, fmt.Errorf("%w: line %d", ErrLineTooLong, s.v.Queries+1)
		case errors.Is(err, io.EOF):
			return s.v, fmt.Errorf("%w: solver left after %d queries", ErrUnexpectedEOF, s.v.Queries)
		case err != nil:
			return s.v, err
		}

		op, rest := firstToken(line)
		switch op {
		case '?':
			if err := s.ask(rest); err != nil {
				return s.v, err
			}
		case '!':
			return s.v, s.announce(rest)
		default:
			return s.v, fmt.Errorf("%w: line %q", ErrMalformedQuery, truncate(line))
		}
	}
}

func (s *Session) ask(rest []byte) error {
	n := s.v.Queries + 1
	stamp := uint32(n)

	s.query = s.query[:0]
	for {
		i, tail, err := fastio.CutInt64(rest)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: query %d: %v", ErrMalformedQuery, n, err)
		}
		if i < 0 || i >= s.sc.Mattresses {
			return fmt.Errorf("%w: query %d: index %d outside [0, %d)", ErrMalformedQuery, n, i, s.sc.Mattresses)
		}
		if s.seen[i] == stamp {
			return fmt.Errorf("%w: query %d: index %d repeated", ErrMalformedQuery, n, i)
		}
		s.seen[i] = stamp
		s.query = append(s.query, i)
		rest = tail
	}
	if len(s.query) == 0 {
		return fmt.Errorf("%w: query %d names no mattress", ErrMalformedQuery, n)
	}

	s.v.Nights += s.owed + 1
	s.owed = 0
	s.v.Queries = n
	if s.v.Nights > s.sc.Nights {
		return fmt.Errorf("%w: query %d needs night %d of %d", ErrBudgetExceeded, n, s.v.Nights, s.sc.Nights)
	}

	hit := s.oracle.Respond(s.query, s.sc.Nights-s.v.Nights)
	if hit {
		s.owed = s.sc.Penalty
		s.v.Hits++
		s.out.Line(1)
	} else {
		s.out.Line(0)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("writing response %d: %w", n, err)
	}
	return nil
}

func (s *Session) announce(rest []byte) error {
	x, tail, err := fastio.CutInt64(rest)
	if err != nil {
		return fmt.Errorf("%w: answer: %v", ErrMalformedQuery, err)
	}
	if _, _, err := fastio.CutInt64(tail); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: answer names more than one mattress", ErrMalformedQuery)
	}
	if x < 0 || x >= s.sc.Mattresses {
		return fmt.Errorf("%w: answer %d outside [0, %d)", ErrMalformedQuery, x, s.sc.Mattresses)
	}

	s.v.Answer = x
	s.v.Correct = s.oracle.Accept(x)
	if !s.v.Correct {
		return fmt.Errorf("%w: %d", ErrWrongAnswer, x)
	}
	return nil
}

// firstToken returns the first non-blank byte of line and what follows it.
func firstToken(line []byte) (byte, []byte) {
	for i, c := range line {
		if c != ' ' && c != '\t' {
			return c, line[i+1:]
		}
	}
	return 0, nil
}

func truncate(b []byte) []byte {
	if len(b) > 32 {
		return b[:32]
	}
	return b
}
