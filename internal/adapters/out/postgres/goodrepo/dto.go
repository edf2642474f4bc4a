// Package goodrepo persists harvests, purchased olives and oil products.
// Stock rows carry no version: Get takes a row lock that the caller's
// transaction holds until it commits.
package goodrepo

import (
	"time"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
)

type HarvestDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Code      *string   `gorm:"uniqueIndex"`
	GroveID   int64     `gorm:"not null;index"`
	Date      time.Time `gorm:"not null"`
	Variety   string
	Initial   pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:initial_"`
	Remaining pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:remaining_"`
}

func (HarvestDTO) TableName() string {
	return "harvests"
}

// PurchasedOliveDTO is the stock a mill received from a confirmed olive
// purchase. A request yields at most one row.
type PurchasedOliveDTO struct {
	ID           int64                   `gorm:"primaryKey;autoIncrement"`
	RequestID    int64                   `gorm:"not null;uniqueIndex"`
	MillID       int64                   `gorm:"not null;index"`
	Quantity     pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:quantity_"`
	PurchaseDate time.Time               `gorm:"not null"`
	Variety      string
	OperationID  *int64 `gorm:"index"`
}

func (PurchasedOliveDTO) TableName() string {
	return "purchased_olives"
}

type OilProductDTO struct {
	ID             int64                   `gorm:"primaryKey;autoIncrement"`
	Code           *string                 `gorm:"uniqueIndex"`
	Cause          int                     `gorm:"type:smallint;not null"`
	OperationID    *int64                  `gorm:"index"`
	MotherID       *int64                  `gorm:"index"`
	OwnerCategory  int                     `gorm:"type:smallint;not null"`
	AcquiredBy     pgtypes.PartyColumns    `gorm:"embedded;embeddedPrefix:acquired_by_"`
	ProductionDate time.Time               `gorm:"not null"`
	Produced       pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:produced_"`
	Remaining      pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:remaining_"`
	Quality        int                     `gorm:"type:smallint;not null"`
	IsAnalysed     bool
	IsPackaged     bool
	IsStored       bool
}

func (OilProductDTO) TableName() string {
	return "oil_products"
}

func harvestFromDomain(h *good.Harvest) HarvestDTO {
	return HarvestDTO{
		ID:        h.ID().Int64(),
		Code:      pgtypes.CodePtr(h.Code()),
		GroveID:   h.GroveID().Int64(),
		Date:      h.Date(),
		Variety:   h.Variety(),
		Initial:   pgtypes.QuantityFromDomain(h.Initial()),
		Remaining: pgtypes.QuantityFromDomain(h.Remaining()),
	}
}

func harvestToDomain(dto HarvestDTO) (*good.Harvest, error) {
	initial, err := dto.Initial.ToDomain()
	if err != nil {
		return nil, err
	}
	remaining, err := dto.Remaining.ToDomain()
	if err != nil {
		return nil, err
	}
	return good.RestoreHarvest(
		kernel.ID(dto.ID),
		pgtypes.Code(dto.Code),
		kernel.ID(dto.GroveID),
		dto.Date,
		dto.Variety,
		initial,
		remaining,
	)
}

func purchasedOliveFromDomain(p *good.PurchasedOlive) PurchasedOliveDTO {
	return PurchasedOliveDTO{
		ID:           p.ID().Int64(),
		RequestID:    p.RequestID().Int64(),
		MillID:       p.MillID().Int64(),
		Quantity:     pgtypes.QuantityFromDomain(p.Quantity()),
		PurchaseDate: p.PurchaseDate(),
		Variety:      p.Variety(),
		OperationID:  pgtypes.OptionalID(p.OperationID()),
	}
}

func purchasedOliveToDomain(dto PurchasedOliveDTO) (*good.PurchasedOlive, error) {
	quantity, err := dto.Quantity.ToDomain()
	if err != nil {
		return nil, err
	}
	return good.RestorePurchasedOlive(
		kernel.ID(dto.ID),
		kernel.ID(dto.RequestID),
		kernel.ID(dto.MillID),
		quantity,
		dto.PurchaseDate,
		dto.Variety,
		pgtypes.ToOptionalID(dto.OperationID),
	)
}

func oilProductFromDomain(p *good.OilProduct) OilProductDTO {
	var acquiredBy *kernel.Party
	if buyer, ok := p.AcquiredBy(); ok {
		acquiredBy = &buyer
	}
	return OilProductDTO{
		ID:             p.ID().Int64(),
		Code:           pgtypes.CodePtr(p.Code()),
		Cause:          int(p.Cause()),
		OperationID:    pgtypes.OptionalID(p.OperationID()),
		MotherID:       pgtypes.OptionalID(p.MotherID()),
		OwnerCategory:  int(p.OwnerCategory()),
		AcquiredBy:     pgtypes.OptionalParty(acquiredBy),
		ProductionDate: p.ProductionDate(),
		Produced:       pgtypes.QuantityFromDomain(p.Produced()),
		Remaining:      pgtypes.QuantityFromDomain(p.Remaining()),
		Quality:        int(p.Quality()),
		IsAnalysed:     p.IsAnalysed(),
		IsPackaged:     p.IsPackaged(),
		IsStored:       p.IsStored(),
	}
}

func oilProductToDomain(dto OilProductDTO) (*good.OilProduct, error) {
	acquiredBy, err := dto.AcquiredBy.ToOptionalDomain()
	if err != nil {
		return nil, err
	}
	produced, err := dto.Produced.ToDomain()
	if err != nil {
		return nil, err
	}
	remaining, err := dto.Remaining.ToDomain()
	if err != nil {
		return nil, err
	}
	return good.RestoreOilProduct(good.OilProductState{
		ID:             kernel.ID(dto.ID),
		Code:           pgtypes.Code(dto.Code),
		Cause:          good.CreationCause(dto.Cause),
		OperationID:    pgtypes.ToOptionalID(dto.OperationID),
		MotherID:       pgtypes.ToOptionalID(dto.MotherID),
		OwnerCategory:  kernel.PartyKind(dto.OwnerCategory),
		AcquiredBy:     acquiredBy,
		ProductionDate: dto.ProductionDate,
		Produced:       produced,
		Remaining:      remaining,
		Quality:        good.Quality(dto.Quality),
		IsAnalysed:     dto.IsAnalysed,
		IsPackaged:     dto.IsPackaged,
		IsStored:       dto.IsStored,
	})
}
