package services

import (
	"oliveflow/internal/core/domain/model/kernel"
)

// OwnershipResolver derives who owns an oil product from its lineage. The
// owner is never stored, so it cannot drift from the lineage it comes from.
//
// Dispatch on the product's owner category:
//   - Farmer: the farmer of the service request behind the producing
//     operation's service offer; failing that, the farmer of the grove of the
//     operation's harvest
//   - Mill: the mill of the most recent purchase among the operation's
//     purchased olives
//   - anything else: unknown
//
// The service offer path wins over the harvest path when both are present.
type OwnershipResolver struct{}

func NewOwnershipResolver() OwnershipResolver {
	return OwnershipResolver{}
}

// Resolve returns the owner of productID, or false when the lineage defines
// none or is incomplete.
func (OwnershipResolver) Resolve(lineage *Arena, productID kernel.ID) (kernel.Party, bool) {
	product, ok := lineage.products[productID]
	if !ok || product.OperationID == nil {
		return kernel.Party{}, false
	}
	op, ok := lineage.operations[*product.OperationID]
	if !ok {
		return kernel.Party{}, false
	}

	switch product.OwnerCategory {
	case kernel.FarmerParty:
		return resolveFarmer(lineage, op)
	case kernel.MillParty:
		return resolveMill(lineage, op)
	default:
		return kernel.Party{}, false
	}
}

// Holder is the party that holds productID now: the buyer for bought oil,
// the lineage owner otherwise.
func (r OwnershipResolver) Holder(lineage *Arena, productID kernel.ID) (kernel.Party, bool) {
	if product, ok := lineage.products[productID]; ok && product.AcquiredBy != nil {
		return *product.AcquiredBy, true
	}
	return r.Resolve(lineage, productID)
}

func resolveFarmer(lineage *Arena, op OperationNode) (kernel.Party, bool) {
	if op.ServiceOfferID != nil {
		if requestID, ok := lineage.serviceOffers[*op.ServiceOfferID]; ok {
			if farmerID, ok := lineage.serviceRequests[requestID]; ok {
				return farmerParty(farmerID)
			}
		}
		return kernel.Party{}, false
	}
	if op.HarvestID != nil {
		if groveID, ok := lineage.harvests[*op.HarvestID]; ok {
			if farmerID, ok := lineage.groves[groveID]; ok {
				return farmerParty(farmerID)
			}
		}
	}
	return kernel.Party{}, false
}

func resolveMill(lineage *Arena, op OperationNode) (kernel.Party, bool) {
	var (
		latest PurchaseNode
		found  bool
	)
	for _, id := range op.PurchasedOliveIDs {
		p, ok := lineage.purchases[id]
		if !ok {
			continue
		}
		if !found || p.PurchaseDate.After(latest.PurchaseDate) ||
			(p.PurchaseDate.Equal(latest.PurchaseDate) && p.ID > latest.ID) {
			latest = p
			found = true
		}
	}
	if !found {
		return kernel.Party{}, false
	}
	mill, err := kernel.NewMill(latest.MillID)
	if err != nil {
		return kernel.Party{}, false
	}
	return mill, true
}

func farmerParty(id kernel.UUID) (kernel.Party, bool) {
	p, err := kernel.NewFarmer(id)
	if err != nil {
		return kernel.Party{}, false
	}
	return p, true
}
