package princess

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxMattresses bounds M. A query line lists up to M indices, so the bound
// also caps the line length either side has to buffer.
const MaxMattresses = 1 << 20

var (
	ErrScenario       = errors.New("princess: invalid scenario")
	ErrBadResponse    = errors.New("princess: judge response is not 0 or 1")
	ErrUnexpectedEOF  = errors.New("princess: unexpected end of stream")
	ErrBudgetExceeded = errors.New("princess: night budget exceeded")
	ErrMalformedQuery = errors.New("princess: malformed query")
	ErrWrongAnswer    = errors.New("princess: wrong answer")
	ErrLineTooLong    = errors.New("princess: line too long")
	ErrNoQuery        = errors.New("princess: no outstanding query")
)

var validate = validator.New()

// Scenario is the header of a game: M mattresses, N nights, S penalty.
type Scenario struct {
	Mattresses int64 `validate:"min=1,max=1048576"`
	Nights     int64 `validate:"min=0"`
	Penalty    int64 `validate:"min=0"`
}

func (sc Scenario) String() string {
	return fmt.Sprintf("M=%d N=%d S=%d", sc.Mattresses, sc.Nights, sc.Penalty)
}

// Validate checks the scenario bounds.
func (sc Scenario) Validate() error {
	if err := validate.Struct(sc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScenario, sc, err)
	}
	return nil
}

// Table returns the capacity table sized for this scenario. Budgets above
// M−1 always fall back to the one-at-a-time scan, so the table never needs
// to reach further than min(N, M).
func (sc Scenario) Table() *Table {
	return NewTable(min(sc.Nights, sc.Mattresses), sc.Penalty)
}

// Feasible reports whether every pea position can be found within the budget
// whatever the judge answers.
func (sc Scenario) Feasible() bool {
	return sc.Mattresses <= sc.Table().At(sc.Nights)
}
