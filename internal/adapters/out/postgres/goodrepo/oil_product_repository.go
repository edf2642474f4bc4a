package goodrepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOilProductRepository implements ports.OilProductRepository using GORM.
type GormOilProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOilProductRepository(db *gorm.DB, tracker aggregateTracker) *GormOilProductRepository {
	return &GormOilProductRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOilProductRepository) Add(ctx context.Context, aggregate *good.OilProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := oilProductFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("oil product", nil, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &OilProductDTO{}, "oil product", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the remaining stock, the quality and the treatment flags.
// Lineage columns never change after insert.
func (r *GormOilProductRepository) Update(ctx context.Context, aggregate *good.OilProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := oilProductFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OilProductDTO{}).
		Where("id = ?", dto.ID).
		Select("remaining_value", "remaining_unit", "quality", "is_analysed", "is_packaged", "is_stored").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("oil product", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.Translate("oil product", aggregate.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the product and locks its row.
func (r *GormOilProductRepository) Get(ctx context.Context, id kernel.ID) (*good.OilProduct, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OilProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		return nil, pgtypes.Translate("oil product", id, err)
	}

	return oilProductToDomain(dto)
}
