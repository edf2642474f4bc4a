package traderepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormOfferRepository implements ports.OfferRepository using GORM.
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

// Add inserts the offer, then stamps its code from the generated ID.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *trade.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("offer", dto.GoodID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &OfferDTO{}, "offer", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the offer if the stored version is still the one it was read
// with and bumps the stored version.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *trade.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "code", "creation_date").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("offer", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.MissedUpdate(ctx, r.db, &OfferDTO{}, "offer", aggregate.ID(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOfferRepository) Get(ctx context.Context, id kernel.ID) (*trade.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("offer", id, err)
	}

	return offerToDomain(dto)
}
