// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work opens one transaction and hands out repositories bound to
// it. Aggregates written through those repositories are tracked and, once the
// transaction commits, reported to the registered CommitObservers.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	offer, err := uow.OfferRepository().Get(ctx, offerID)
//	// ... change the offer
//	if err := uow.OfferRepository().Update(ctx, offer); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Without Begin the repositories run on the plain connection and every
// statement commits on its own.
package postgres

import (
	"context"

	"oliveflow/internal/adapters/out/postgres/facilityrepo"
	"oliveflow/internal/adapters/out/postgres/goodrepo"
	"oliveflow/internal/adapters/out/postgres/lineagerepo"
	"oliveflow/internal/adapters/out/postgres/outboxrepo"
	"oliveflow/internal/adapters/out/postgres/servicerepo"
	"oliveflow/internal/adapters/out/postgres/traderepo"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// CommitObserver is told about the aggregates of every committed unit of
// work. It is not called after a rollback or a failed commit.
type CommitObserver interface {
	Committed(aggregates []TrackedAggregate)
}

// GormUnitOfWorkFactory creates a fresh UnitOfWork for each business
// operation.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	observers []CommitObserver
}

func NewGormUnitOfWorkFactory(db *gorm.DB, observers ...CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observers: observers}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observers:         f.observers,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction. It is not safe for
// concurrent use; goroutines take their own instance from the factory.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observers         []CommitObserver
	trackedAggregates []TrackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finishes the transaction and notifies the observers.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	committed := uow.trackedAggregates
	uow.trackedAggregates = make([]TrackedAggregate, 0)
	for _, observer := range uow.observers {
		observer.Committed(committed)
	}
	return nil
}

// Rollback discards the transaction. Handlers defer it right after Begin, so
// after a successful Commit it returns gorm.ErrInvalidTransaction, which they
// ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return traderepo.NewGormOfferRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return traderepo.NewGormRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) NeedRepository() ports.NeedRepository {
	return traderepo.NewGormNeedRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HarvestRepository() ports.HarvestRepository {
	return goodrepo.NewGormHarvestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PurchasedOliveRepository() ports.PurchasedOliveRepository {
	return goodrepo.NewGormPurchasedOliveRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OilProductRepository() ports.OilProductRepository {
	return goodrepo.NewGormOilProductRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MillRepository() ports.MillRepository {
	return facilityrepo.NewGormMillRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) GroveRepository() ports.GroveRepository {
	return facilityrepo.NewGormGroveRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MachineRepository() ports.MachineRepository {
	return facilityrepo.NewGormMachineRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StorageAreaRepository() ports.StorageAreaRepository {
	return facilityrepo.NewGormStorageAreaRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ServiceRequestRepository() ports.ServiceRequestRepository {
	return servicerepo.NewGormRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ServiceOfferRepository() ports.ServiceOfferRepository {
	return servicerepo.NewGormOfferRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OperationRepository() ports.OperationRepository {
	return servicerepo.NewGormOperationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn(), uow)
}

// LineageReader reads inside the open transaction, so it sees rows the same
// unit of work has written but not committed yet.
func (uow *GormUnitOfWork) LineageReader() ports.LineageReader {
	return lineagerepo.NewGormLineageReader(uow.conn())
}

// TrackAggregate is called by the repositories after every Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
