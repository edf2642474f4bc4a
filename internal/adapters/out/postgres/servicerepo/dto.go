// Package servicerepo persists the service pipeline: farmers' requests, the
// mills' offers on them and the operations that complete them.
package servicerepo

import (
	"time"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RequestDTO struct {
	ID               int64                   `gorm:"primaryKey;autoIncrement"`
	Code             *string                 `gorm:"uniqueIndex"`
	Kind             int                     `gorm:"type:smallint;not null"`
	FarmerID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	SubjectID        int64                   `gorm:"not null;index"`
	Considered       pgtypes.QuantityColumns `gorm:"embedded;embeddedPrefix:considered_"`
	Price            pgtypes.MoneyColumns    `gorm:"embedded;embeddedPrefix:price_"`
	RequestDate      time.Time               `gorm:"not null"`
	Status           int                     `gorm:"type:smallint;not null;index"`
	StatusUpdateDate time.Time
	Details          DetailsDocument `gorm:"type:jsonb;serializer:json"`
	Version          int64           `gorm:"not null;default:1"`
}

func (RequestDTO) TableName() string {
	return "service_requests"
}

type OfferDTO struct {
	ID               int64                `gorm:"primaryKey;autoIncrement"`
	Code             *string              `gorm:"uniqueIndex"`
	Kind             int                  `gorm:"type:smallint;not null"`
	MillID           int64                `gorm:"not null;index"`
	RequestID        int64                `gorm:"not null;index"`
	Price            pgtypes.MoneyColumns `gorm:"embedded;embeddedPrefix:price_"`
	OfferDate        time.Time            `gorm:"not null"`
	Negotiable       bool
	Status           int `gorm:"type:smallint;not null;index"`
	StatusUpdateDate time.Time
	Version          int64 `gorm:"not null;default:1"`
}

func (OfferDTO) TableName() string {
	return "service_offers"
}

// OperationDTO is a completed operation. Exactly one of the source columns
// is set.
type OperationDTO struct {
	ID                int64          `gorm:"primaryKey;autoIncrement"`
	Code              *string        `gorm:"uniqueIndex"`
	Kind              int            `gorm:"type:smallint;not null"`
	MillID            int64          `gorm:"not null;index"`
	HarvestID         *int64         `gorm:"index"`
	PurchasedOliveIDs pq.Int64Array  `gorm:"type:bigint[]"`
	ServiceOfferID    *int64         `gorm:"index"`
	SubjectProductID  *int64         `gorm:"index"`
	OutputProductID   *int64         `gorm:"index"`
	OperationDate     time.Time      `gorm:"not null"`
	Record            RecordDocument `gorm:"type:jsonb;serializer:json"`
}

func (OperationDTO) TableName() string {
	return "operations"
}

func requestFromDomain(r *service.Request) RequestDTO {
	return RequestDTO{
		ID:               r.ID().Int64(),
		Code:             pgtypes.CodePtr(r.Code()),
		Kind:             int(r.Kind()),
		FarmerID:         r.FarmerID().Bytes(),
		SubjectID:        r.SubjectID().Int64(),
		Considered:       pgtypes.QuantityFromDomain(r.Considered()),
		Price:            pgtypes.MoneyFromDomain(r.Price()),
		RequestDate:      r.RequestDate(),
		Status:           int(r.Status()),
		StatusUpdateDate: r.StatusUpdateDate(),
		Details:          detailsFromDomain(r.Details()),
		Version:          r.Version(),
	}
}

func requestToDomain(dto RequestDTO) (*service.Request, error) {
	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}
	considered, err := dto.Considered.ToDomain()
	if err != nil {
		return nil, err
	}
	price, err := dto.Price.ToDomain()
	if err != nil {
		return nil, err
	}
	kind := service.Kind(dto.Kind)
	details, err := dto.Details.toDomain(kind)
	if err != nil {
		return nil, err
	}

	return service.RestoreRequest(service.RequestState{
		ID:               kernel.ID(dto.ID),
		Code:             pgtypes.Code(dto.Code),
		Kind:             kind,
		FarmerID:         farmerID,
		SubjectID:        kernel.ID(dto.SubjectID),
		Considered:       considered,
		Price:            price,
		RequestDate:      dto.RequestDate,
		Status:           service.RequestStatus(dto.Status),
		StatusUpdateDate: dto.StatusUpdateDate,
		Details:          details,
		Version:          dto.Version,
	})
}

func offerFromDomain(o *service.Offer) OfferDTO {
	return OfferDTO{
		ID:               o.ID().Int64(),
		Code:             pgtypes.CodePtr(o.Code()),
		Kind:             int(o.Kind()),
		MillID:           o.MillID().Int64(),
		RequestID:        o.RequestID().Int64(),
		Price:            pgtypes.MoneyFromDomain(o.Price()),
		OfferDate:        o.OfferDate(),
		Negotiable:       o.Negotiable(),
		Status:           int(o.Status()),
		StatusUpdateDate: o.StatusUpdateDate(),
		Version:          o.Version(),
	}
}

func offerToDomain(dto OfferDTO) (*service.Offer, error) {
	price, err := dto.Price.ToDomain()
	if err != nil {
		return nil, err
	}
	return service.RestoreOffer(service.OfferState{
		ID:               kernel.ID(dto.ID),
		Code:             pgtypes.Code(dto.Code),
		Kind:             service.Kind(dto.Kind),
		MillID:           kernel.ID(dto.MillID),
		RequestID:        kernel.ID(dto.RequestID),
		Price:            price,
		OfferDate:        dto.OfferDate,
		Negotiable:       dto.Negotiable,
		Status:           service.OfferStatus(dto.Status),
		StatusUpdateDate: dto.StatusUpdateDate,
		Version:          dto.Version,
	})
}

func operationFromDomain(op *service.Operation) OperationDTO {
	dto := OperationDTO{
		ID:               op.ID().Int64(),
		Code:             pgtypes.CodePtr(op.Code()),
		Kind:             int(op.Kind()),
		MillID:           op.MillID().Int64(),
		SubjectProductID: pgtypes.OptionalID(op.SubjectProductID()),
		OutputProductID:  pgtypes.OptionalID(op.OutputProductID()),
		OperationDate:    op.Date(),
		Record:           recordFromDomain(op.Record()),
	}

	source := op.Source()
	if id, ok := source.HarvestID(); ok {
		dto.HarvestID = pgtypes.OptionalID(&id)
	}
	if id, ok := source.ServiceOfferID(); ok {
		dto.ServiceOfferID = pgtypes.OptionalID(&id)
	}
	for _, id := range source.PurchasedOliveIDs() {
		dto.PurchasedOliveIDs = append(dto.PurchasedOliveIDs, id.Int64())
	}
	return dto
}

func operationToDomain(dto OperationDTO) (*service.Operation, error) {
	purchased := make([]kernel.ID, 0, len(dto.PurchasedOliveIDs))
	for _, id := range dto.PurchasedOliveIDs {
		purchased = append(purchased, kernel.ID(id))
	}
	source, err := service.NewSource(
		pgtypes.ToOptionalID(dto.HarvestID),
		purchased,
		pgtypes.ToOptionalID(dto.ServiceOfferID),
	)
	if err != nil {
		return nil, err
	}
	kind := service.Kind(dto.Kind)
	record, err := dto.Record.toDomain(kind)
	if err != nil {
		return nil, err
	}

	return service.RestoreOperation(service.OperationState{
		ID:               kernel.ID(dto.ID),
		Code:             pgtypes.Code(dto.Code),
		Kind:             kind,
		MillID:           kernel.ID(dto.MillID),
		Source:           source,
		SubjectProductID: pgtypes.ToOptionalID(dto.SubjectProductID),
		OutputProductID:  pgtypes.ToOptionalID(dto.OutputProductID),
		Record:           record,
	})
}
