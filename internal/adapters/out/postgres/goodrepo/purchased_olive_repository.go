package goodrepo

import (
	"context"
	"fmt"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPurchasedOliveRepository implements ports.PurchasedOliveRepository
// using GORM.
type GormPurchasedOliveRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPurchasedOliveRepository(db *gorm.DB, tracker aggregateTracker) *GormPurchasedOliveRepository {
	return &GormPurchasedOliveRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPurchasedOliveRepository) Add(ctx context.Context, aggregate *good.PurchasedOlive) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := purchasedOliveFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("purchased olives", dto.RequestID, err)
	}
	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update records the consuming operation. Only a row nobody consumed yet is
// written, so two operations cannot press the same olives.
func (r *GormPurchasedOliveRepository) Update(ctx context.Context, aggregate *good.PurchasedOlive) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	operationID := aggregate.OperationID()
	if operationID == nil {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&PurchasedOliveDTO{}).
		Where("id = ? AND operation_id IS NULL", aggregate.ID().Int64()).
		Update("operation_id", operationID.Int64())
	if result.Error != nil {
		return pgtypes.Translate("purchased olives", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewConflictError("purchased olives",
			fmt.Errorf("olives %s were already pressed", aggregate.ID()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPurchasedOliveRepository) Get(ctx context.Context, id kernel.ID) (*good.PurchasedOlive, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PurchasedOliveDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("purchased olives", id, err)
	}

	return purchasedOliveToDomain(dto)
}

func (r *GormPurchasedOliveRepository) GetByRequest(ctx context.Context, requestID kernel.ID) (*good.PurchasedOlive, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto PurchasedOliveDTO
	if err := r.db.WithContext(ctx).First(&dto, "request_id = ?", requestID.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("purchased olives of request", requestID, err)
	}

	return purchasedOliveToDomain(dto)
}
