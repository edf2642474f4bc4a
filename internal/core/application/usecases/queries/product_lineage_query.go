package queries

import (
	"errors"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var (
	ErrProductLineageQueryIsNotConstructed = errors.New(
		"ProductLineageQuery must be created via NewProductLineageQuery constructor",
	)
)

// ProductLineageQuery lists an oil product followed by the products it was
// split from, up to the extracted one.
type ProductLineageQuery struct {
	productID kernel.ID

	guard guard.ConstructorGuard
}

func NewProductLineageQuery(productID kernel.ID) (ProductLineageQuery, error) {
	if err := productID.Validate(); err != nil {
		return ProductLineageQuery{}, err
	}
	return ProductLineageQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q ProductLineageQuery) Validate() error {
	return q.guard.Validate(ErrProductLineageQueryIsNotConstructed)
}

func (q ProductLineageQuery) ProductID() kernel.ID {
	return q.productID
}

// ProductLineageQueryResponse is one link of the chain.
type ProductLineageQueryResponse struct {
	ID             kernel.ID
	Code           kernel.Code
	Cause          good.CreationCause
	ProductionDate time.Time
	Produced       kernel.Quantity
	OperationID    *kernel.ID
	Holder         *kernel.Party
}
