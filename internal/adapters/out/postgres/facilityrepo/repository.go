package facilityrepo

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// GormMillRepository implements ports.MillRepository using GORM.
type GormMillRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormMillRepository(db *gorm.DB, tracker aggregateTracker) *GormMillRepository {
	return &GormMillRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add registers the mill. A second mill for the same manager is a conflict.
func (r *GormMillRepository) Add(ctx context.Context, aggregate *facility.OilMill) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := millFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("oil mill", aggregate.ManagerID().String(), err)
	}
	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMillRepository) Get(ctx context.Context, id kernel.ID) (*facility.OilMill, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MillDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("oil mill", id, err)
	}

	return millToDomain(dto)
}

func (r *GormMillRepository) GetByManager(ctx context.Context, managerID kernel.UUID) (*facility.OilMill, error) {
	if err := managerID.Validate(); err != nil {
		return nil, err
	}

	var dto MillDTO
	if err := r.db.WithContext(ctx).First(&dto, "manager_id = ?", managerID.Bytes()).Error; err != nil {
		return nil, pgtypes.Translate("oil mill of manager", managerID.String(), err)
	}

	return millToDomain(dto)
}

// GormGroveRepository implements ports.GroveRepository using GORM.
type GormGroveRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormGroveRepository(db *gorm.DB, tracker aggregateTracker) *GormGroveRepository {
	return &GormGroveRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormGroveRepository) Add(ctx context.Context, aggregate *facility.OliveGrove) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := groveFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("olive grove", aggregate.Name(), err)
	}
	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormGroveRepository) Get(ctx context.Context, id kernel.ID) (*facility.OliveGrove, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GroveDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("olive grove", id, err)
	}

	return groveToDomain(dto)
}

// GormMachineRepository implements ports.MachineRepository using GORM.
type GormMachineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormMachineRepository(db *gorm.DB, tracker aggregateTracker) *GormMachineRepository {
	return &GormMachineRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormMachineRepository) Add(ctx context.Context, aggregate *facility.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := machineFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("machine", aggregate.Reference(), err)
	}
	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMachineRepository) Get(ctx context.Context, id kernel.ID) (*facility.Machine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MachineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("machine", id, err)
	}

	return machineToDomain(dto)
}

// Delete removes a retired machine. Deleting an unknown machine is
// ObjectNotFound.
func (r *GormMachineRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MachineDTO{}, "id = ?", id.Int64())
	if result.Error != nil {
		return pgtypes.Translate("machine", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return pgtypes.Translate("machine", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// GormStorageAreaRepository implements ports.StorageAreaRepository using GORM.
type GormStorageAreaRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormStorageAreaRepository(db *gorm.DB, tracker aggregateTracker) *GormStorageAreaRepository {
	return &GormStorageAreaRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormStorageAreaRepository) Add(ctx context.Context, aggregate *facility.StorageArea) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := storageAreaFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.Translate("storage area", aggregate.Address(), err)
	}
	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStorageAreaRepository) Get(ctx context.Context, id kernel.ID) (*facility.StorageArea, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StorageAreaDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		return nil, pgtypes.Translate("storage area", id, err)
	}

	return storageAreaToDomain(dto)
}
