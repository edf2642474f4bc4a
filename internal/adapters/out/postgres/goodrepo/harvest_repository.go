package goodrepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormHarvestRepository implements ports.HarvestRepository using GORM.
type GormHarvestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormHarvestRepository(db *gorm.DB, tracker aggregateTracker) *GormHarvestRepository {
	return &GormHarvestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormHarvestRepository) Add(ctx context.Context, aggregate *good.Harvest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := harvestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("harvest", dto.GroveID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &HarvestDTO{}, "harvest", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the remaining stock back.
func (r *GormHarvestRepository) Update(ctx context.Context, aggregate *good.Harvest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := harvestFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&HarvestDTO{}).
		Where("id = ?", dto.ID).
		Select("remaining_value", "remaining_unit").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("harvest", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.Translate("harvest", aggregate.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the harvest and locks its row.
func (r *GormHarvestRepository) Get(ctx context.Context, id kernel.ID) (*good.Harvest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HarvestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		return nil, pgtypes.Translate("harvest", id, err)
	}

	return harvestToDomain(dto)
}
