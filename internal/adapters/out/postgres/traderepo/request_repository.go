package traderepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"

	"gorm.io/gorm"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
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

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *trade.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("request", dto.OfferID, err)
	}
	if err := aggregate.AssignIdentity(kernel.ID(dto.ID)); err != nil {
		return err
	}
	if err := pgtypes.StampCode(ctx, r.db, &RequestDTO{}, "request", aggregate.ID(), aggregate.Code()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Update(ctx context.Context, aggregate *trade.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := requestFromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "code", "request_date").
		Updates(&dto)
	if result.Error != nil {
		return pgtypes.Translate("request", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return pgtypes.MissedUpdate(ctx, r.db, &RequestDTO{}, "request", aggregate.ID(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.ID) (*trade.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("request", id, err)
	}

	return requestToDomain(dto)
}

// ListOpenByOffer returns the Pending and Approved requests of an offer in
// the order they were placed.
func (r *GormRequestRepository) ListOpenByOffer(ctx context.Context, offerID kernel.ID) ([]*trade.Request, error) {
	if err := offerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("offer_id = ? AND status IN ?", offerID.Int64(), []int{int(trade.RequestPending), int(trade.RequestApproved)}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*trade.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := requestToDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
