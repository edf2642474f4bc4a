package queries

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/guard"
)

var (
	ErrOfferBalanceQueryIsNotConstructed = errors.New(
		"OfferBalanceQuery must be created via NewOfferBalanceQuery constructor",
	)
	ErrUnbalancedOffersQueryIsNotConstructed = errors.New(
		"UnbalancedOffersQuery must be created via NewUnbalancedOffersQuery constructor",
	)
)

// OfferBalanceQuery checks one offer against the conservation rule:
// what was bought equals what left the offer.
type OfferBalanceQuery struct {
	offerID kernel.ID

	guard guard.ConstructorGuard
}

func NewOfferBalanceQuery(offerID kernel.ID) (OfferBalanceQuery, error) {
	if err := offerID.Validate(); err != nil {
		return OfferBalanceQuery{}, err
	}
	return OfferBalanceQuery{offerID: offerID, guard: guard.NewConstructorGuard()}, nil
}

func (q OfferBalanceQuery) Validate() error {
	return q.guard.Validate(ErrOfferBalanceQueryIsNotConstructed)
}

func (q OfferBalanceQuery) OfferID() kernel.ID {
	return q.offerID
}

// UnbalancedOffersQuery lists every offer whose balance does not conserve.
type UnbalancedOffersQuery struct {
	guard guard.ConstructorGuard
}

func NewUnbalancedOffersQuery() UnbalancedOffersQuery {
	return UnbalancedOffersQuery{guard: guard.NewConstructorGuard()}
}

func (q UnbalancedOffersQuery) Validate() error {
	return q.guard.Validate(ErrUnbalancedOffersQueryIsNotConstructed)
}

// OfferBalanceQueryResponse holds the quantities of an offer. Bought is the
// sum requested over its Bought requests; Conserved reports whether
// Initial - Available == Bought.
type OfferBalanceQueryResponse struct {
	OfferID   kernel.ID
	Code      kernel.Code
	Status    trade.OfferStatus
	Initial   kernel.Quantity
	Available kernel.Quantity
	Bought    kernel.Quantity
	Conserved bool
}
