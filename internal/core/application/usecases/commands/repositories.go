// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"oliveflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	NeedRepoFactory interface {
		NeedRepository() ports.NeedRepository
	}

	HarvestRepoFactory interface {
		HarvestRepository() ports.HarvestRepository
	}

	PurchasedOliveRepoFactory interface {
		PurchasedOliveRepository() ports.PurchasedOliveRepository
	}

	OilProductRepoFactory interface {
		OilProductRepository() ports.OilProductRepository
	}

	MillRepoFactory interface {
		MillRepository() ports.MillRepository
	}

	GroveRepoFactory interface {
		GroveRepository() ports.GroveRepository
	}

	MachineRepoFactory interface {
		MachineRepository() ports.MachineRepository
	}

	StorageAreaRepoFactory interface {
		StorageAreaRepository() ports.StorageAreaRepository
	}

	ServiceRequestRepoFactory interface {
		ServiceRequestRepository() ports.ServiceRequestRepository
	}

	ServiceOfferRepoFactory interface {
		ServiceOfferRepository() ports.ServiceOfferRepository
	}

	OperationRepoFactory interface {
		OperationRepository() ports.OperationRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	LineageReaderFactory interface {
		LineageReader() ports.LineageReader
	}

	// FacilityUoW covers registering mills, groves, machines and storage
	// areas, and recording harvests.
	FacilityUoW interface {
		TxManager
		MillRepoFactory
		GroveRepoFactory
		MachineRepoFactory
		StorageAreaRepoFactory
		HarvestRepoFactory
	}

	FacilityUoWFactory interface {
		Create() FacilityUoW
	}

	// TradeUoW covers needs, offers and requests together with the goods
	// they move.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   offer, err := uow.OfferRepository().Get(ctx, offerID)
	//   request, err := uow.RequestRepository().Get(ctx, requestID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	TradeUoW interface {
		TxManager
		OfferRepoFactory
		RequestRepoFactory
		NeedRepoFactory
		HarvestRepoFactory
		PurchasedOliveRepoFactory
		OilProductRepoFactory
		MillRepoFactory
		GroveRepoFactory
		OutboxRepoFactory
		LineageReaderFactory
	}

	TradeUoWFactory interface {
		Create() TradeUoW
	}

	// ServiceUoW covers the service pipeline and the operations it ends in.
	ServiceUoW interface {
		TxManager
		ServiceRequestRepoFactory
		ServiceOfferRepoFactory
		OperationRepoFactory
		HarvestRepoFactory
		PurchasedOliveRepoFactory
		OilProductRepoFactory
		MillRepoFactory
		GroveRepoFactory
		StorageAreaRepoFactory
		OutboxRepoFactory
		LineageReaderFactory
	}

	ServiceUoWFactory interface {
		Create() ServiceUoW
	}

	// OutboxUoW is used by notification delivery only.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
