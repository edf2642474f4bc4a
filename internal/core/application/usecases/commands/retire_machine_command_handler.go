package commands

import (
	"context"
	"fmt"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// RetireMachineCommandHandler deletes a machine. Only the manager of the
// mill the machine is installed at may retire it.
type RetireMachineCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRetireMachineCommandHandler(uowFactory FacilityUoWFactory) RetireMachineCommandHandler {
	return RetireMachineCommandHandler{uowFactory: uowFactory}
}

func (h RetireMachineCommandHandler) Handle(ctx context.Context, cmd RetireMachineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireRole("retire a machine", kernel.MillManagerRole); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mill, err := uow.MillRepository().GetByManager(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}
	machine, err := uow.MachineRepository().Get(ctx, cmd.MachineID())
	if err != nil {
		return err
	}
	if !machine.IsInstalledAt(mill) {
		return errs.NewPermissionDeniedError(fmt.Sprintf("retire machine %d", machine.ID()), cmd.Actor().String())
	}

	if err = uow.MachineRepository().Delete(ctx, machine.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
