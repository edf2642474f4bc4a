package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/errs"
	"oliveflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSearchOffersQueryIsNotConstructed = errors.New(
	"SearchOffersQuery must be created via NewSearchOffersQuery constructor",
)

const MaxOfferPage = 100

// OfferSort orders search results. The zero value lists the newest offers
// first.
type OfferSort int

const (
	NewestFirst OfferSort = iota
	PriceAscending
	PriceDescending
	QuantityAscending
	QuantityDescending
)

func getOfferSortStrings() map[OfferSort]string {
	return map[OfferSort]string{
		NewestFirst:        "newest",
		PriceAscending:     "price_asc",
		PriceDescending:    "price_desc",
		QuantityAscending:  "quantity_asc",
		QuantityDescending: "quantity_desc",
	}
}

// ParseOfferSort accepts the empty string as NewestFirst.
func ParseOfferSort(s string) (OfferSort, error) {
	if s == "" {
		return NewestFirst, nil
	}
	for sort, str := range getOfferSortStrings() {
		if str == s {
			return sort, nil
		}
	}
	return NewestFirst, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not an offer order", s))
}

func (s OfferSort) String() string {
	return getOfferSortStrings()[s]
}

// OfferFilter narrows an offer search. Zero fields do not filter: an
// UnknownKind matches both goods, UnspecifiedTransport any transport and an
// empty variety any variety. Bounds are inclusive.
type OfferFilter struct {
	Kind        trade.Kind
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQuantity *decimal.Decimal
	MaxQuantity *decimal.Decimal
	Transport   trade.Transport
	Variety     string
}

func (f OfferFilter) validate() error {
	var err error
	if f.Kind != trade.UnknownKind {
		err = f.Kind.Validate()
	}
	err = errors.Join(err, f.Transport.Validate(),
		validateRange("price", f.MinPrice, f.MaxPrice),
		validateRange("quantity", f.MinQuantity, f.MaxQuantity))
	return err
}

func validateRange(name string, lower, upper *decimal.Decimal) error {
	var err error
	for _, bound := range []*decimal.Decimal{lower, upper} {
		if bound != nil && bound.IsNegative() {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", bound)))
		}
	}
	if lower != nil && upper != nil && lower.GreaterThan(*upper) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("min %s is above max %s", lower, upper)))
	}
	return err
}

// SearchOffersQuery pages through the offers still on sale.
type SearchOffersQuery struct {
	filter OfferFilter
	sort   OfferSort
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewSearchOffersQuery(filter OfferFilter, sort OfferSort, limit, offset int) (SearchOffersQuery, error) {
	filter.Variety = strings.TrimSpace(filter.Variety)
	err := filter.validate()
	if sort < NewestFirst || sort > QuantityDescending {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%d is not an offer order", sort)))
	}
	if limit < 1 || limit > MaxOfferPage {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOfferPage))
	}
	if offset < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("offset", fmt.Errorf("%d is negative", offset)))
	}
	if err != nil {
		return SearchOffersQuery{}, err
	}
	return SearchOffersQuery{
		filter: filter,
		sort:   sort,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOffersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOffersQueryIsNotConstructed)
}

func (q SearchOffersQuery) Filter() OfferFilter { return q.filter }
func (q SearchOffersQuery) Sort() OfferSort     { return q.sort }
func (q SearchOffersQuery) Limit() int          { return q.limit }
func (q SearchOffersQuery) Offset() int         { return q.offset }

// OfferListing is an available offer as buyers see it. Variety is the
// harvest's, falling back to its grove's, and empty for oil offers.
type OfferListing struct {
	OfferID      kernel.ID
	Code         kernel.Code
	Kind         trade.Kind
	GoodID       kernel.ID
	Seller       kernel.Party
	Available    kernel.Quantity
	Price        kernel.Money
	Transport    trade.Transport
	Variety      string
	CreationDate time.Time
}
