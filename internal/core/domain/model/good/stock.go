package good

import (
	"fmt"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// Stock tracks how much of a good is still unallocated.
// Invariant: 0 <= remaining <= initial, both in the same unit.
type Stock struct {
	initial   kernel.Quantity
	remaining kernel.Quantity
}

// NewStock starts a stock with everything unallocated.
func NewStock(initial kernel.Quantity) (Stock, error) {
	if err := initial.ValidatePositive("initial quantity"); err != nil {
		return Stock{}, err
	}
	return Stock{initial: initial, remaining: initial}, nil
}

// RestoreStock rebuilds a persisted stock.
func RestoreStock(initial kernel.Quantity, remaining kernel.Quantity) (Stock, error) {
	s, err := NewStock(initial)
	if err != nil {
		return Stock{}, err
	}
	over, err := remaining.GreaterThan(initial)
	if err != nil {
		return Stock{}, err
	}
	if over {
		return Stock{}, errs.NewValueIsOutOfRangeError("remaining quantity", remaining, 0, initial)
	}
	s.remaining = remaining
	return s, nil
}

func (s Stock) Initial() kernel.Quantity {
	return s.initial
}

func (s Stock) Remaining() kernel.Quantity {
	return s.remaining
}

// Allocate takes amount out of the remaining quantity. The whole amount is
// taken or nothing is.
func (s Stock) Allocate(amount kernel.Quantity) (Stock, error) {
	if err := amount.ValidatePositive("allocated quantity"); err != nil {
		return s, err
	}
	remaining, err := s.remaining.Sub(amount)
	if err != nil {
		return s, err
	}
	s.remaining = remaining
	return s, nil
}

// Release gives amount back. Releasing more than was allocated is rejected.
func (s Stock) Release(amount kernel.Quantity) (Stock, error) {
	if amount.IsZero() {
		return s, nil
	}
	remaining, err := s.remaining.Add(amount)
	if err != nil {
		return s, err
	}
	over, err := remaining.GreaterThan(s.initial)
	if err != nil {
		return s, err
	}
	if over {
		return s, errs.NewValueIsOutOfRangeErrorWithCause("released quantity", amount, 0, s.initial,
			fmt.Errorf("only %s was allocated", s.allocated()))
	}
	s.remaining = remaining
	return s, nil
}

func (s Stock) allocated() kernel.Quantity {
	q, _ := s.initial.Sub(s.remaining)
	return q
}
