// Package queries contains read operations for retrieving system state.
// Queries never change state; they either walk the lineage graph or read
// the tables directly with SQL.
package queries

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var (
	ErrResolveOwnerQueryIsNotConstructed = errors.New(
		"ResolveOwnerQuery must be created via NewResolveOwnerQuery constructor",
	)
)

// ResolveOwnerQuery asks who owns an oil product according to its lineage.
//
// Example:
//
//	query, err := NewResolveOwnerQuery(productID)
//	result, err := handler.Handle(ctx, query)
//	if result.Owner == nil {
//	    // lineage defines no owner
//	}
type ResolveOwnerQuery struct {
	productID kernel.ID

	guard guard.ConstructorGuard
}

func NewResolveOwnerQuery(productID kernel.ID) (ResolveOwnerQuery, error) {
	if err := productID.Validate(); err != nil {
		return ResolveOwnerQuery{}, err
	}
	return ResolveOwnerQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveOwnerQuery) Validate() error {
	return q.guard.Validate(ErrResolveOwnerQueryIsNotConstructed)
}

func (q ResolveOwnerQuery) ProductID() kernel.ID {
	return q.productID
}

// ResolveOwnerQueryResponse is the ownership of one product. Owner is the
// party derived from the lineage; Holder is who holds the oil now, which
// differs for bought oil. Either is nil when unknown.
type ResolveOwnerQueryResponse struct {
	ProductID     kernel.ID
	OwnerCategory kernel.PartyKind
	Owner         *kernel.Party
	Holder        *kernel.Party
}
