package traderepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNeedRepository implements ports.NeedRepository using GORM. Needs carry
// no version; Get locks the row for the rest of the transaction instead.
type GormNeedRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormNeedRepository(db *gorm.DB, tracker aggregateTracker) *GormNeedRepository {
	return &GormNeedRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormNeedRepository) Add(ctx context.Context, aggregate *trade.Need) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := needFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("need", nil, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &NeedDTO{}, "need", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNeedRepository) Update(ctx context.Context, aggregate *trade.Need) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := needFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NeedDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "status_update_date").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("need", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.Translate("need", aggregate.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNeedRepository) Get(ctx context.Context, id kernel.ID) (*trade.Need, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NeedDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		return nil, pgtypes.Translate("need", id, err)
	}

	return needToDomain(dto)
}
