package outboxrepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/ports"
	"oliveflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOutboxRepository(db *gorm.DB, tracker aggregateTracker) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOutboxRepository) Add(ctx context.Context, event notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("notification", event.Subject().String(), err)
	}

	r.tracker.TrackAggregate(kernel.ID(dto.ID), event)
	return nil
}

// Pending returns up to limit undelivered events, oldest first. The rows are
// locked for the caller's transaction and skipped by concurrent callers.
func (r *GormOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxEntry, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("delivered_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkDelivered stamps the event with the database clock. Marking an event
// twice is a no-op.
func (r *GormOutboxRepository) MarkDelivered(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ? AND delivered_at IS NULL", id.Int64()).
		Update("delivered_at", gorm.Expr("now()"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&EventDTO{}).Where("id = ?", id.Int64()).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return errs.NewObjectNotFoundError("notification", id)
		}
	}

	return nil
}
