package kernel

import (
	"errors"
	"fmt"

	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit of a quantity of olives or oil.
type Unit int

const (
	UnknownUnit Unit = iota
	Tonnes
	Kilograms
	Liters
)

func getUnitStrings() map[Unit]string {
	return map[Unit]string{
		UnknownUnit: "unknown",
		Tonnes:      "t",
		Kilograms:   "kg",
		Liters:      "l",
	}
}

// ParseUnit maps the short symbol ("t", "kg", "l") to a Unit.
func ParseUnit(s string) (Unit, error) {
	for u, str := range getUnitStrings() {
		if u != UnknownUnit && str == s {
			return u, nil
		}
	}
	return UnknownUnit, errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not a valid unit", s))
}

func (u Unit) Validate() error {
	if u <= UnknownUnit || u > Liters {
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%d is not a valid unit", u))
	}
	return nil
}

func (u Unit) String() string {
	if str, ok := getUnitStrings()[u]; ok {
		return str
	}
	return "unknown"
}

// ErrQuantityIsNotConstructed is returned when a zero-value Quantity is used.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity or ZeroQuantity")

// Quantity is a non-negative exact amount of a good in a unit.
//
// Arithmetic never mixes units: adding 1 t to 1 kg is a validation error,
// not a conversion.
type Quantity struct { //nolint:recvcheck //using for validation
	value decimal.Decimal
	unit  Unit
	guard guard.ConstructorGuard
}

// NewQuantity builds a quantity; value must not be negative.
func NewQuantity(value decimal.Decimal, unit Unit) (Quantity, error) {
	q := Quantity{guard: guard.NewConstructorGuard()}
	if err := errors.Join(q.setValue(value), q.setUnit(unit)); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// NewPositiveQuantity builds a quantity that must be strictly greater than zero.
func NewPositiveQuantity(value decimal.Decimal, unit Unit) (Quantity, error) {
	q, err := NewQuantity(value, unit)
	if err != nil {
		return Quantity{}, err
	}
	if err = q.ValidatePositive("quantity"); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// ZeroQuantity returns an empty quantity in unit.
func ZeroQuantity(unit Unit) (Quantity, error) {
	return NewQuantity(decimal.Zero, unit)
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

// ValidatePositive fails unless the quantity is constructed and greater than zero.
func (q Quantity) ValidatePositive(paramName string) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if !q.value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", q.value))
	}
	return nil
}

func (q Quantity) Value() decimal.Decimal {
	return q.value
}

func (q Quantity) Unit() Unit {
	return q.unit
}

func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.compatible(other); err != nil {
		return Quantity{}, err
	}
	return NewQuantity(q.value.Add(other.value), q.unit)
}

// Sub returns q - other. Taking more than q holds is an InsufficientQuantityError
// and q is left as it was.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if err := q.compatible(other); err != nil {
		return Quantity{}, err
	}
	if other.value.GreaterThan(q.value) {
		return Quantity{}, errs.NewInsufficientQuantityError("quantity", other, q)
	}
	return NewQuantity(q.value.Sub(other.value), q.unit)
}

// GreaterThan compares two quantities of the same unit.
func (q Quantity) GreaterThan(other Quantity) (bool, error) {
	if err := q.compatible(other); err != nil {
		return false, err
	}
	return q.value.GreaterThan(other.value), nil
}

// Equal compares value and unit.
func (q Quantity) Equal(other Quantity) bool {
	return q.unit == other.unit && q.value.Equal(other.value)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.value.String(), q.unit)
}

func (q Quantity) compatible(other Quantity) error {
	if err := errors.Join(q.Validate(), other.Validate()); err != nil {
		return err
	}
	if q.unit != other.unit {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit",
			fmt.Errorf("%s and %s are not the same unit", q.unit, other.unit),
		)
	}
	return nil
}

func (q *Quantity) setValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is negative", value))
	}
	q.value = value
	return nil
}

func (q *Quantity) setUnit(unit Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	q.unit = unit
	return nil
}
