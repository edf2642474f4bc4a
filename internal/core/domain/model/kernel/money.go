package kernel

import (
	"errors"
	"fmt"

	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency of a price.
type Currency int

const (
	UnknownCurrency Currency = iota
	Dollar
	Euro
	TunisianDinar
)

func getCurrencyStrings() map[Currency]string {
	return map[Currency]string{
		UnknownCurrency: "unknown",
		Dollar:          "$",
		Euro:            "€",
		TunisianDinar:   "TND",
	}
}

// ParseCurrency maps "$", "€" or "TND" to a Currency.
func ParseCurrency(s string) (Currency, error) {
	for c, str := range getCurrencyStrings() {
		if c != UnknownCurrency && str == s {
			return c, nil
		}
	}
	return UnknownCurrency, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a valid currency", s))
}

func (c Currency) Validate() error {
	if c <= UnknownCurrency || c > TunisianDinar {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%d is not a valid currency", c))
	}
	return nil
}

func (c Currency) String() string {
	if str, ok := getCurrencyStrings()[c]; ok {
		return str
	}
	return "unknown"
}

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is a non-negative price. Prices are informative: no arithmetic is
// performed on them, so there is no conversion between currencies.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}
	return m, nil
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(3), m.currency)
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", amount))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	m.currency = currency
	return nil
}
