package servicerepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormRequestRepository implements ports.ServiceRequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *service.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("service request", dto.SubjectID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &RequestDTO{}, "service request", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Update(ctx context.Context, aggregate *service.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("status", "status_update_date", "version").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("service request", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.MissedUpdate(ctx, r.db, &RequestDTO{}, "service request", aggregate.ID(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.ID) (*service.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("service request", id, err)
	}

	return requestToDomain(dto)
}

// GormOfferRepository implements ports.ServiceOfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOfferRepository) Add(ctx context.Context, aggregate *service.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("service offer", dto.RequestID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &OfferDTO{}, "service offer", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOfferRepository) Update(ctx context.Context, aggregate *service.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("status", "status_update_date", "version").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("service offer", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.MissedUpdate(ctx, r.db, &OfferDTO{}, "service offer", aggregate.ID(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOfferRepository) Get(ctx context.Context, id kernel.ID) (*service.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("service offer", id, err)
	}

	return offerToDomain(dto)
}

// ListByRequest returns every offer made on a request, oldest first.
func (r *GormOfferRepository) ListByRequest(ctx context.Context, requestID kernel.ID) ([]*service.Offer, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OfferDTO
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID.Int64()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	offers := make([]*service.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := offerToDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, nil
}

// GormOperationRepository implements ports.OperationRepository using GORM.
type GormOperationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOperationRepository(db *gorm.DB, tracker aggregateTracker) *GormOperationRepository {
	return &GormOperationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOperationRepository) Add(ctx context.Context, aggregate *service.Operation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := operationFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("operation", dto.MillID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &OperationDTO{}, "operation", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update attaches the output product. Nothing else of an operation changes.
func (r *GormOperationRepository) Update(ctx context.Context, aggregate *service.Operation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := operationFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OperationDTO{}).
		Where("id = ?", dto.ID).
		Update("output_product_id", dto.OutputProductID)
	if result.Error != nil {
		return pgtypes.Translate("operation", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.Translate("operation", aggregate.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOperationRepository) Get(ctx context.Context, id kernel.ID) (*service.Operation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OperationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("operation", id, err)
	}

	return operationToDomain(dto)
}
