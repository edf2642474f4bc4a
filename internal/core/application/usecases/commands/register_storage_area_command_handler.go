package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
)

// RegisterStorageAreaCommandHandler records a storage area for a farmer or
// for the mill a manager runs.
type RegisterStorageAreaCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRegisterStorageAreaCommandHandler(uowFactory FacilityUoWFactory) RegisterStorageAreaCommandHandler {
	return RegisterStorageAreaCommandHandler{uowFactory: uowFactory}
}

func (h RegisterStorageAreaCommandHandler) Handle(ctx context.Context, cmd RegisterStorageAreaCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("register a storage area", kernel.FarmerRole, kernel.MillManagerRole); err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return Created{}, err
	}

	area, err := facility.NewStorageArea(
		owner,
		cmd.LocalType(),
		cmd.Address(),
		cmd.Location(),
		cmd.ContainerType(),
		cmd.ContainerCount(),
	)
	if err != nil {
		return Created{}, err
	}
	if err = uow.StorageAreaRepository().Add(ctx, area); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: area.ID()}, nil
}
