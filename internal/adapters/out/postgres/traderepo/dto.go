// Package traderepo persists needs, offers and purchase requests.
package traderepo

import (
	"time"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
)

// OfferDTO is the row of an olive or oil sale offer.
type OfferDTO struct {
	ID            int64                   `gorm:"primaryKey;autoIncrement"`
	Code          *string                 `gorm:"uniqueIndex"`
	Kind          int                     `gorm:"type:smallint;not null"`
	GoodID        int64                   `gorm:"not null;index"`
	Seller        pgtypes.PartyColumns    `gorm:"embedded;embeddedPrefix:seller_"`
	Initial       pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:initial_"`
	Available     pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:available_"`
	Price         pgtypes.MoneyColumns    `gorm:"embedded;embeddedPrefix:price_"`
	CreationDate  time.Time               `gorm:"not null"`
	UpdateDate    time.Time
	Status        int    `gorm:"type:smallint;not null;index"`
	NeedID        *int64 `gorm:"index"`
	MotherOfferID *int64 `gorm:"index"`
	Transport     int    `gorm:"type:smallint;not null;default:0;index"`
	Version       int64  `gorm:"not null;default:1"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

// RequestDTO is the row of a purchase request placed on an offer.
type RequestDTO struct {
	ID               int64                   `gorm:"primaryKey;autoIncrement"`
	Code             *string                 `gorm:"uniqueIndex"`
	Kind             int                     `gorm:"type:smallint;not null"`
	OfferID          int64                   `gorm:"not null;index"`
	Buyer            pgtypes.PartyColumns    `gorm:"embedded;embeddedPrefix:buyer_"`
	Requested        pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:requested_"`
	Price            pgtypes.MoneyColumns    `gorm:"embedded;embeddedPrefix:price_"`
	RequestDate      time.Time               `gorm:"not null"`
	Status           int                     `gorm:"type:smallint;not null;index"`
	StatusUpdateDate time.Time
	Appreciation     *int
	Feedback         string
	Version          int64 `gorm:"not null;default:1"`
}

func (RequestDTO) TableName() string {
	return "requests"
}

// NeedDTO is the row of a posted need.
type NeedDTO struct {
	ID               int64                   `gorm:"primaryKey;autoIncrement"`
	Code             *string                 `gorm:"uniqueIndex"`
	Kind             int                     `gorm:"type:smallint;not null"`
	Creator          pgtypes.PartyColumns    `gorm:"embedded;embeddedPrefix:creator_"`
	Quantity         pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:quantity_"`
	MaxPrice         pgtypes.MoneyColumns    `gorm:"embedded;embeddedPrefix:max_price_"`
	NeedDate         time.Time               `gorm:"not null"`
	Description      string
	Status           int `gorm:"type:smallint;not null;index"`
	StatusUpdateDate time.Time
}

func (NeedDTO) TableName() string {
	return "needs"
}

func offerFromDomain(o *trade.Offer) OfferDTO {
	return OfferDTO{
		ID:            o.ID().Int64(),
		Code:          pgtypes.CodePtr(o.Code()),
		Kind:          int(o.Kind()),
		GoodID:        o.GoodID().Int64(),
		Seller:        pgtypes.PartyFromDomain(o.Seller()),
		Initial:       pgtypes.QuantityFromDomain(o.Initial()),
		Available:     pgtypes.QuantityFromDomain(o.Available()),
		Price:         pgtypes.MoneyFromDomain(o.Price()),
		CreationDate:  o.CreationDate(),
		UpdateDate:    o.UpdateDate(),
		Status:        int(o.Status()),
		NeedID:        pgtypes.OptionalID(o.NeedID()),
		MotherOfferID: pgtypes.OptionalID(o.MotherOfferID()),
		Transport:     int(o.Transport()),
		Version:       o.Version(),
	}
}

func offerToDomain(dto OfferDTO) (*trade.Offer, error) {
	seller, err := dto.Seller.ToDomain()
	if err != nil {
		return nil, err
	}
	initial, err := dto.Initial.ToDomain()
	if err != nil {
		return nil, err
	}
	available, err := dto.Available.ToDomain()
	if err != nil {
		return nil, err
	}
	price, err := dto.Price.ToDomain()
	if err != nil {
		return nil, err
	}

	return trade.RestoreOffer(trade.OfferState{
		ID:            kernel.ID(dto.ID),
		Code:          pgtypes.Code(dto.Code),
		Kind:          trade.Kind(dto.Kind),
		GoodID:        kernel.ID(dto.GoodID),
		Seller:        seller,
		Initial:       initial,
		Available:     available,
		Price:         price,
		CreationDate:  dto.CreationDate,
		UpdateDate:    dto.UpdateDate,
		Status:        trade.OfferStatus(dto.Status),
		NeedID:        pgtypes.ToOptionalID(dto.NeedID),
		MotherOfferID: pgtypes.ToOptionalID(dto.MotherOfferID),
		Transport:     trade.Transport(dto.Transport),
		Version:       dto.Version,
	})
}

func requestFromDomain(r *trade.Request) RequestDTO {
	return RequestDTO{
		ID:               r.ID().Int64(),
		Code:             pgtypes.CodePtr(r.Code()),
		Kind:             int(r.Kind()),
		OfferID:          r.OfferID().Int64(),
		Buyer:            pgtypes.PartyFromDomain(r.Buyer()),
		Requested:        pgtypes.QuantityFromDomain(r.Requested()),
		Price:            pgtypes.MoneyFromDomain(r.Price()),
		RequestDate:      r.RequestDate(),
		Status:           int(r.Status()),
		StatusUpdateDate: r.StatusUpdateDate(),
		Appreciation:     r.Appreciation(),
		Feedback:         r.Feedback(),
		Version:          r.Version(),
	}
}

func requestToDomain(dto RequestDTO) (*trade.Request, error) {
	buyer, err := dto.Buyer.ToDomain()
	if err != nil {
		return nil, err
	}
	requested, err := dto.Requested.ToDomain()
	if err != nil {
		return nil, err
	}
	price, err := dto.Price.ToDomain()
	if err != nil {
		return nil, err
	}

	return trade.RestoreRequest(trade.RequestState{
		ID:               kernel.ID(dto.ID),
		Code:             pgtypes.Code(dto.Code),
		Kind:             trade.Kind(dto.Kind),
		OfferID:          kernel.ID(dto.OfferID),
		Buyer:            buyer,
		Requested:        requested,
		Price:            price,
		RequestDate:      dto.RequestDate,
		Status:           trade.RequestStatus(dto.Status),
		StatusUpdateDate: dto.StatusUpdateDate,
		Appreciation:     dto.Appreciation,
		Feedback:         dto.Feedback,
		Version:          dto.Version,
	})
}

func needFromDomain(n *trade.Need) NeedDTO {
	return NeedDTO{
		ID:               n.ID().Int64(),
		Code:             pgtypes.CodePtr(n.Code()),
		Kind:             int(n.Kind()),
		Creator:          pgtypes.PartyFromDomain(n.Creator()),
		Quantity:         pgtypes.QuantityFromDomain(n.Quantity()),
		MaxPrice:         pgtypes.MoneyFromDomain(n.MaxPrice()),
		NeedDate:         n.NeedDate(),
		Description:      n.Description(),
		Status:           int(n.Status()),
		StatusUpdateDate: n.StatusUpdateDate(),
	}
}

func needToDomain(dto NeedDTO) (*trade.Need, error) {
	creator, err := dto.Creator.ToDomain()
	if err != nil {
		return nil, err
	}
	quantity, err := dto.Quantity.ToDomain()
	if err != nil {
		return nil, err
	}
	maxPrice, err := dto.MaxPrice.ToDomain()
	if err != nil {
		return nil, err
	}

	return trade.RestoreNeed(trade.NeedState{
		ID:               kernel.ID(dto.ID),
		Code:             pgtypes.Code(dto.Code),
		Kind:             trade.Kind(dto.Kind),
		Creator:          creator,
		Quantity:         quantity,
		MaxPrice:         maxPrice,
		NeedDate:         dto.NeedDate,
		Description:      dto.Description,
		Status:           trade.NeedStatus(dto.Status),
		StatusUpdateDate: dto.StatusUpdateDate,
	})
}
