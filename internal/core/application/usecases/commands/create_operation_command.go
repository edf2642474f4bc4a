package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateOperationCommandIsNotConstructed = errors.New(
	"CreateOperationCommand must be created via NewCreateOperationCommand constructor",
)

// CreateOperationCommand records an extraction done outside the service
// pipeline: a farmer pressing a harvest at millID, or a mill pressing olives
// it bought. Exactly one of harvestID and purchasedOliveIDs is set.
type CreateOperationCommand struct {
	actor  kernel.Actor
	millID *kernel.ID
	source service.Source
	record service.ExtractionRecord

	guard guard.ConstructorGuard
}

func NewCreateOperationCommand(
	actor kernel.Actor,
	millID *kernel.ID,
	harvestID *kernel.ID,
	purchasedOliveIDs []kernel.ID,
	record service.ExtractionRecord,
) (CreateOperationCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOperationCommand{}, err
	}
	source, err := service.NewSource(harvestID, purchasedOliveIDs, nil)
	if err != nil {
		return CreateOperationCommand{}, err
	}
	return CreateOperationCommand{
		actor:  actor,
		millID: millID,
		source: source,
		record: record,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOperationCommand) Validate() error {
	return c.guard.Validate(ErrCreateOperationCommandIsNotConstructed)
}

func (c CreateOperationCommand) Actor() kernel.Actor              { return c.actor }
func (c CreateOperationCommand) MillID() *kernel.ID               { return c.millID }
func (c CreateOperationCommand) Source() service.Source           { return c.source }
func (c CreateOperationCommand) Record() service.ExtractionRecord { return c.record }
