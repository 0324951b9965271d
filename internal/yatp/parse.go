package yatp

import (
	"errors"
	"fmt"
	"io"

	"arena.lopezb.com/internal/fastio"
)

// Parse reads a tree in the judge format:
//
//	n
//	p_1 … p_n
//	u v w      (n−1 lines)
//
// and validates it with NewTree.
func Parse(r io.Reader) (*Tree, error) {
	s := fastio.NewScanner(r, 0)

	n, err := s.Int()
	if err != nil {
		return nil, fmt.Errorf("reading node count: %w", eofIsUnexpected(err))
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: node count %d", ErrEmpty, n)
	}

	penalties := make([]int64, n)
	for i := range penalties {
		if penalties[i], err = s.Int64(); err != nil {
			return nil, fmt.Errorf("reading penalty %d: %w", i+1, eofIsUnexpected(err))
		}
	}

	edges := make([]Edge, n-1)
	for i := range edges {
		e := &edges[i]
		if e.U, err = s.Int(); err != nil {
			return nil, fmt.Errorf("reading edge %d: %w", i+1, eofIsUnexpected(err))
		}
		if e.V, err = s.Int(); err != nil {
			return nil, fmt.Errorf("reading edge %d: %w", i+1, eofIsUnexpected(err))
		}
		if e.W, err = s.Int64(); err != nil {
			return nil, fmt.Errorf("reading edge %d: %w", i+1, eofIsUnexpected(err))
		}
	}

	return NewTree(penalties, edges)
}

func eofIsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
