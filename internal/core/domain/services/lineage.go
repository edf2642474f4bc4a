package services

import (
	"fmt"
	"slices"
	"time"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"
)

// ProductNode is an oil product as seen by the lineage walk.
type ProductNode struct {
	ID            kernel.ID
	OwnerCategory kernel.PartyKind
	OperationID   *kernel.ID
	MotherID      *kernel.ID
	AcquiredBy    *kernel.Party
}

// OperationNode holds the source references of an operation as stored.
// Stored rows may carry more than one reference; the walk applies a fixed
// precedence instead of trusting that they do not.
type OperationNode struct {
	ID                kernel.ID
	HarvestID         *kernel.ID
	PurchasedOliveIDs []kernel.ID
	ServiceOfferID    *kernel.ID
}

type PurchaseNode struct {
	ID           kernel.ID
	MillID       kernel.ID
	PurchaseDate time.Time
}

// Arena is the lineage graph: every node keyed by its ID, every edge an ID
// looked up on demand. One node may be reached from several paths.
type Arena struct {
	products        map[kernel.ID]ProductNode
	operations      map[kernel.ID]OperationNode
	serviceOffers   map[kernel.ID]kernel.ID   // offer -> request
	serviceRequests map[kernel.ID]kernel.UUID // request -> farmer
	harvests        map[kernel.ID]kernel.ID   // harvest -> grove
	groves          map[kernel.ID]kernel.UUID // grove -> farmer
	purchases       map[kernel.ID]PurchaseNode
}

func NewArena() *Arena {
	return &Arena{
		products:        make(map[kernel.ID]ProductNode),
		operations:      make(map[kernel.ID]OperationNode),
		serviceOffers:   make(map[kernel.ID]kernel.ID),
		serviceRequests: make(map[kernel.ID]kernel.UUID),
		harvests:        make(map[kernel.ID]kernel.ID),
		groves:          make(map[kernel.ID]kernel.UUID),
		purchases:       make(map[kernel.ID]PurchaseNode),
	}
}

func (a *Arena) PutProductNode(n ProductNode) {
	a.products[n.ID] = n
}

func (a *Arena) PutOperationNode(n OperationNode) {
	a.operations[n.ID] = n
}

func (a *Arena) PutServiceOffer(offerID kernel.ID, requestID kernel.ID) {
	a.serviceOffers[offerID] = requestID
}

func (a *Arena) PutServiceRequest(requestID kernel.ID, farmerID kernel.UUID) {
	a.serviceRequests[requestID] = farmerID
}

func (a *Arena) PutHarvest(harvestID kernel.ID, groveID kernel.ID) {
	a.harvests[harvestID] = groveID
}

func (a *Arena) PutGrove(groveID kernel.ID, farmerID kernel.UUID) {
	a.groves[groveID] = farmerID
}

func (a *Arena) PutPurchase(n PurchaseNode) {
	a.purchases[n.ID] = n
}

// AddProduct, AddOperation and the other Add methods load aggregates.

func (a *Arena) AddProduct(p *good.OilProduct) {
	n := ProductNode{
		ID:            p.ID(),
		OwnerCategory: p.OwnerCategory(),
		OperationID:   p.OperationID(),
		MotherID:      p.MotherID(),
	}
	if buyer, ok := p.AcquiredBy(); ok {
		n.AcquiredBy = &buyer
	}
	a.PutProductNode(n)
}

func (a *Arena) AddOperation(op *service.Operation) {
	n := OperationNode{ID: op.ID(), PurchasedOliveIDs: op.Source().PurchasedOliveIDs()}
	if id, ok := op.Source().HarvestID(); ok {
		n.HarvestID = &id
	}
	if id, ok := op.Source().ServiceOfferID(); ok {
		n.ServiceOfferID = &id
	}
	a.PutOperationNode(n)
}

func (a *Arena) AddServiceOffer(o *service.Offer) {
	a.PutServiceOffer(o.ID(), o.RequestID())
}

func (a *Arena) AddServiceRequest(r *service.Request) {
	a.PutServiceRequest(r.ID(), r.FarmerID())
}

func (a *Arena) AddHarvest(h *good.Harvest) {
	a.PutHarvest(h.ID(), h.GroveID())
}

func (a *Arena) AddGrove(g *facility.OliveGrove) {
	a.PutGrove(g.ID(), g.FarmerID())
}

func (a *Arena) AddPurchasedOlive(p *good.PurchasedOlive) {
	a.PutPurchase(PurchaseNode{ID: p.ID(), MillID: p.MillID(), PurchaseDate: p.PurchaseDate()})
}

// Product returns the node of productID.
func (a *Arena) Product(productID kernel.ID) (ProductNode, bool) {
	n, ok := a.products[productID]
	return n, ok
}

// Ancestry returns productID followed by its mother, grandmother and so on.
// A product that is its own ancestor is reported as invalid lineage.
func (a *Arena) Ancestry(productID kernel.ID) ([]kernel.ID, error) {
	var chain []kernel.ID
	id := productID
	for {
		if slices.Contains(chain, id) {
			return chain, errs.NewValueIsInvalidErrorWithCause(
				"lineage", fmt.Errorf("product %s is its own ancestor", id))
		}
		n, found := a.products[id]
		if !found {
			if len(chain) == 0 {
				return nil, errs.NewObjectNotFoundError("oil product", id)
			}
			break
		}
		chain = append(chain, id)
		if n.MotherID == nil {
			break
		}
		id = *n.MotherID
	}
	return chain, nil
}
