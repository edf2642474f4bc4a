package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every repository it hands out is bound to the transaction started by Begin.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OfferRepository() OfferRepository
	RequestRepository() RequestRepository
	NeedRepository() NeedRepository

	HarvestRepository() HarvestRepository
	PurchasedOliveRepository() PurchasedOliveRepository
	OilProductRepository() OilProductRepository

	MillRepository() MillRepository
	GroveRepository() GroveRepository
	MachineRepository() MachineRepository
	StorageAreaRepository() StorageAreaRepository

	ServiceRequestRepository() ServiceRequestRepository
	ServiceOfferRepository() ServiceOfferRepository
	OperationRepository() OperationRepository

	OutboxRepository() OutboxRepository

	// LineageReader reads through the same transaction as the repositories.
	LineageReader() LineageReader
}
