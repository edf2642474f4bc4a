package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
)

// RegisterMachineCommandHandler adds a machine to the manager's own mill.
type RegisterMachineCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRegisterMachineCommandHandler(uowFactory FacilityUoWFactory) RegisterMachineCommandHandler {
	return RegisterMachineCommandHandler{uowFactory: uowFactory}
}

func (h RegisterMachineCommandHandler) Handle(ctx context.Context, cmd RegisterMachineCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("register a machine", kernel.MillManagerRole); err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mill, err := uow.MillRepository().GetByManager(ctx, cmd.Actor().ID())
	if err != nil {
		return Created{}, err
	}

	machine, err := facility.NewMachine(
		mill.ID(),
		cmd.Reference(),
		cmd.Brand(),
		cmd.Manufacturer(),
		cmd.PurchaseDate(),
		cmd.Capacity(),
		cmd.Type(),
	)
	if err != nil {
		return Created{}, err
	}
	if err = uow.MachineRepository().Add(ctx, machine); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: machine.ID()}, nil
}
