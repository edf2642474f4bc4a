package queries

import (
	"context"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/core/ports"
)

// ResolveOwnerQueryHandler loads the lineage of a product and runs the
// ownership resolver over it.
type ResolveOwnerQueryHandler struct {
	reader   ports.LineageReader
	resolver services.OwnershipResolver
}

func NewResolveOwnerQueryHandler(reader ports.LineageReader) ResolveOwnerQueryHandler {
	return ResolveOwnerQueryHandler{reader: reader, resolver: services.NewOwnershipResolver()}
}

// Handle returns ObjectNotFoundError when the product does not exist.
func (h ResolveOwnerQueryHandler) Handle(
	ctx context.Context,
	query ResolveOwnerQuery,
) (ResolveOwnerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveOwnerQueryResponse{}, err
	}

	lineage, err := h.reader.Load(ctx, query.ProductID())
	if err != nil {
		return ResolveOwnerQueryResponse{}, err
	}
	if _, err = lineage.Ancestry(query.ProductID()); err != nil {
		return ResolveOwnerQueryResponse{}, err
	}

	product, _ := lineage.Product(query.ProductID())
	response := ResolveOwnerQueryResponse{
		ProductID:     product.ID,
		OwnerCategory: product.OwnerCategory,
	}
	if owner, ok := h.resolver.Resolve(lineage, product.ID); ok {
		response.Owner = partyPtr(owner)
	}
	if holder, ok := h.resolver.Holder(lineage, product.ID); ok {
		response.Holder = partyPtr(holder)
	}
	return response, nil
}

func partyPtr(p kernel.Party) *kernel.Party {
	return &p
}
