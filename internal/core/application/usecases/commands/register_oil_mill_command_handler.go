package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
)

// RegisterOilMillCommandHandler lets an administrator register a mill.
type RegisterOilMillCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRegisterOilMillCommandHandler(uowFactory FacilityUoWFactory) RegisterOilMillCommandHandler {
	return RegisterOilMillCommandHandler{uowFactory: uowFactory}
}

func (h RegisterOilMillCommandHandler) Handle(ctx context.Context, cmd RegisterOilMillCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("register an oil mill", kernel.AdministratorRole); err != nil {
		return Created{}, err
	}

	mill, err := facility.NewOilMill(cmd.Name(), cmd.ManagerID(), cmd.HasLab(), cmd.HasPackUnit())
	if err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MillRepository().Add(ctx, mill); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: mill.ID()}, nil
}
