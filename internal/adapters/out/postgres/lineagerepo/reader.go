// Package lineagerepo loads the slice of the lineage graph an oil product
// depends on.
package lineagerepo

import (
	"context"
	"time"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// The UNION drops rows already produced, so a corrupted mother cycle ends the
// recursion instead of looping. The arena reports the cycle.
const ancestrySQL = `
WITH RECURSIVE chain AS (
	SELECT id, mother_id FROM oil_products WHERE id = ?
	UNION
	SELECT p.id, p.mother_id FROM oil_products p JOIN chain c ON p.id = c.mother_id
)
SELECT p.id, p.owner_category, p.operation_id, p.mother_id,
	p.acquired_by_kind, p.acquired_by_mill_id, p.acquired_by_actor_id
FROM oil_products p JOIN chain c ON p.id = c.id`

type productRow struct {
	ID            int64
	OwnerCategory int
	OperationID   *int64
	MotherID      *int64
	AcquiredBy    pgtypes.PartyColumns `gorm:"embedded;embeddedPrefix:acquired_by_"`
}

type operationRow struct {
	ID                int64
	HarvestID         *int64
	PurchasedOliveIDs pq.Int64Array
	ServiceOfferID    *int64
}

type pairRow struct {
	ID    int64
	RefID int64
}

type ownerRow struct {
	ID      int64
	OwnerID uuid.UUID
}

type purchaseRow struct {
	ID           int64
	MillID       int64
	PurchaseDate time.Time
}

// GormLineageReader implements ports.LineageReader with a handful of
// set-based queries.
type GormLineageReader struct {
	db *gorm.DB
}

func NewGormLineageReader(db *gorm.DB) *GormLineageReader {
	return &GormLineageReader{db: db}
}

func (r *GormLineageReader) Load(ctx context.Context, productID kernel.ID) (*services.Arena, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	arena := services.NewArena()

	var products []productRow
	if err := db.Raw(ancestrySQL, productID.Int64()).Scan(&products).Error; err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errs.NewObjectNotFoundError("oil product", productID)
	}

	var operationIDs []int64
	for _, p := range products {
		acquiredBy, err := p.AcquiredBy.ToOptionalDomain()
		if err != nil {
			return nil, err
		}
		arena.PutProductNode(services.ProductNode{
			ID:            kernel.ID(p.ID),
			OwnerCategory: kernel.PartyKind(p.OwnerCategory),
			OperationID:   pgtypes.ToOptionalID(p.OperationID),
			MotherID:      pgtypes.ToOptionalID(p.MotherID),
			AcquiredBy:    acquiredBy,
		})
		if p.OperationID != nil {
			operationIDs = append(operationIDs, *p.OperationID)
		}
	}
	if len(operationIDs) == 0 {
		return arena, nil
	}

	var operations []operationRow
	err := db.Raw(`SELECT id, harvest_id, purchased_olive_ids, service_offer_id
		FROM operations WHERE id IN ?`, operationIDs).Scan(&operations).Error
	if err != nil {
		return nil, err
	}

	var harvestIDs, purchaseIDs, offerIDs []int64
	for _, op := range operations {
		node := services.OperationNode{
			ID:             kernel.ID(op.ID),
			HarvestID:      pgtypes.ToOptionalID(op.HarvestID),
			ServiceOfferID: pgtypes.ToOptionalID(op.ServiceOfferID),
		}
		for _, id := range op.PurchasedOliveIDs {
			node.PurchasedOliveIDs = append(node.PurchasedOliveIDs, kernel.ID(id))
		}
		arena.PutOperationNode(node)

		if op.HarvestID != nil {
			harvestIDs = append(harvestIDs, *op.HarvestID)
		}
		if op.ServiceOfferID != nil {
			offerIDs = append(offerIDs, *op.ServiceOfferID)
		}
		purchaseIDs = append(purchaseIDs, op.PurchasedOliveIDs...)
	}

	if err = r.loadServiceOffers(db, arena, offerIDs); err != nil {
		return nil, err
	}
	if err = r.loadHarvests(db, arena, harvestIDs); err != nil {
		return nil, err
	}
	if err = r.loadPurchases(db, arena, purchaseIDs); err != nil {
		return nil, err
	}

	return arena, nil
}

func (r *GormLineageReader) loadServiceOffers(db *gorm.DB, arena *services.Arena, offerIDs []int64) error {
	if len(offerIDs) == 0 {
		return nil
	}

	var offers []pairRow
	err := db.Raw(`SELECT id, request_id AS ref_id FROM service_offers WHERE id IN ?`, offerIDs).Scan(&offers).Error
	if err != nil {
		return err
	}
	requestIDs := make([]int64, 0, len(offers))
	for _, o := range offers {
		arena.PutServiceOffer(kernel.ID(o.ID), kernel.ID(o.RefID))
		requestIDs = append(requestIDs, o.RefID)
	}
	if len(requestIDs) == 0 {
		return nil
	}

	var requests []ownerRow
	err = db.Raw(`SELECT id, farmer_id AS owner_id FROM service_requests WHERE id IN ?`, requestIDs).
		Scan(&requests).Error
	if err != nil {
		return err
	}
	for _, req := range requests {
		farmerID, err := kernel.UUIDFromBytes(req.OwnerID[:])
		if err != nil {
			return err
		}
		arena.PutServiceRequest(kernel.ID(req.ID), farmerID)
	}
	return nil
}

func (r *GormLineageReader) loadHarvests(db *gorm.DB, arena *services.Arena, harvestIDs []int64) error {
	if len(harvestIDs) == 0 {
		return nil
	}

	var harvests []pairRow
	err := db.Raw(`SELECT id, grove_id AS ref_id FROM harvests WHERE id IN ?`, harvestIDs).Scan(&harvests).Error
	if err != nil {
		return err
	}
	groveIDs := make([]int64, 0, len(harvests))
	for _, h := range harvests {
		arena.PutHarvest(kernel.ID(h.ID), kernel.ID(h.RefID))
		groveIDs = append(groveIDs, h.RefID)
	}
	if len(groveIDs) == 0 {
		return nil
	}

	var groves []ownerRow
	err = db.Raw(`SELECT id, farmer_id AS owner_id FROM olive_groves WHERE id IN ?`, groveIDs).Scan(&groves).Error
	if err != nil {
		return err
	}
	for _, g := range groves {
		farmerID, err := kernel.UUIDFromBytes(g.OwnerID[:])
		if err != nil {
			return err
		}
		arena.PutGrove(kernel.ID(g.ID), farmerID)
	}
	return nil
}

func (r *GormLineageReader) loadPurchases(db *gorm.DB, arena *services.Arena, purchaseIDs []int64) error {
	if len(purchaseIDs) == 0 {
		return nil
	}

	var purchases []purchaseRow
	err := db.Raw(`SELECT id, mill_id, purchase_date FROM purchased_olives WHERE id IN ?`, purchaseIDs).
		Scan(&purchases).Error
	if err != nil {
		return err
	}
	for _, p := range purchases {
		arena.PutPurchase(services.PurchaseNode{
			ID:           kernel.ID(p.ID),
			MillID:       kernel.ID(p.MillID),
			PurchaseDate: p.PurchaseDate,
		})
	}
	return nil
}
