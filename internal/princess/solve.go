package princess

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"arena.lopezb.com/internal/fastio"
)

// Result summarises a finished game from the solver's side.
type Result struct {
	Scenario Scenario
	Answer   int64
	Queries  int64
	Nights   int64
}

// Solve plays one game against a judge: it reads the "M N S" header from r,
// sends "? i…" queries to w, reads a "0" or "1" line back for each one and
// finishes with "! x". Every line is flushed as soon as it is written.
func Solve(r io.Reader, w io.Writer) (Result, error) {
	in := fastio.NewScanner(r, 0)
	out := fastio.NewWriter(w, 0)

	var sc Scenario
	for _, f := range []*int64{&sc.Mattresses, &sc.Nights, &sc.Penalty} {
		v, err := in.Int64()
		if err != nil {
			return Result{}, fmt.Errorf("reading header: %w", unexpectedEOF(err))
		}
		*f = v
	}
	res := Result{Scenario: sc}

	// Rest of the header line.
	if line, err := in.Line(); err != nil && !errors.Is(err, io.EOF) {
		return res, fmt.Errorf("reading header: %w", err)
	} else if len(bytes.TrimSpace(line)) != 0 {
		return res, fmt.Errorf("%w: trailing header bytes %q", ErrBadResponse, line)
	}

	s, err := NewSearch(sc)
	if err != nil {
		return res, err
	}

	for {
		lo, hi, done := s.Next()
		res.Queries, res.Nights = s.Queries(), s.Spent()
		if done {
			res.Answer = s.Answer()
			out.String("! ")
			out.Line(res.Answer)
			if err := out.Flush(); err != nil {
				return res, fmt.Errorf("writing answer: %w", err)
			}
			return res, nil
		}

		out.Byte('?')
		for i := lo; i < hi; i++ {
			out.Byte(' ')
			out.Int64(i)
		}
		out.Byte('\n')
		if err := out.Flush(); err != nil {
			return res, fmt.Errorf("writing query %d: %w", s.Queries()+1, err)
		}

		line, err := in.Line()
		if err != nil {
			return res, fmt.Errorf("reading response %d: %w", s.Queries()+1, unexpectedEOF(err))
		}
		hit, err := parseResponse(line)
		if err != nil {
			return res, err
		}
		if err := s.Observe(hit); err != nil {
			return res, err
		}
	}
}

func parseResponse(line []byte) (bool, error) {
	switch string(bytes.TrimSpace(line)) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrBadResponse, line)
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrUnexpectedEOF
	}
	return err
}
