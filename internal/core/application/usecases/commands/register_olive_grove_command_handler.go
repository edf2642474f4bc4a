package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/kernel"
)

type RegisterOliveGroveCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRegisterOliveGroveCommandHandler(uowFactory FacilityUoWFactory) RegisterOliveGroveCommandHandler {
	return RegisterOliveGroveCommandHandler{uowFactory: uowFactory}
}

func (h RegisterOliveGroveCommandHandler) Handle(ctx context.Context, cmd RegisterOliveGroveCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("register an olive grove", kernel.FarmerRole); err != nil {
		return Created{}, err
	}

	grove, err := facility.NewOliveGrove(cmd.Name(), cmd.Actor().ID(), cmd.Variety())
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

	if err = uow.GroveRepository().Add(ctx, grove); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: grove.ID()}, nil
}
