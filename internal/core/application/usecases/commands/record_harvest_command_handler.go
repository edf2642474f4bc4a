package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

// RecordHarvestCommandHandler stores a harvest of the actor's own grove and
// stamps its code.
type RecordHarvestCommandHandler struct {
	uowFactory FacilityUoWFactory
}

func NewRecordHarvestCommandHandler(uowFactory FacilityUoWFactory) RecordHarvestCommandHandler {
	return RecordHarvestCommandHandler{uowFactory: uowFactory}
}

func (h RecordHarvestCommandHandler) Handle(ctx context.Context, cmd RecordHarvestCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("record a harvest", kernel.FarmerRole); err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	grove, err := uow.GroveRepository().Get(ctx, cmd.GroveID())
	if err != nil {
		return Created{}, err
	}
	if !grove.FarmerID().IsEqual(cmd.Actor().ID()) {
		return Created{}, errs.NewPermissionDeniedError("record a harvest of grove "+grove.ID().String(), cmd.Actor().String())
	}

	variety := cmd.Variety()
	if variety == "" {
		variety = grove.Variety()
	}
	harvest, err := good.NewHarvest(grove.ID(), cmd.Date(), cmd.Quantity(), variety)
	if err != nil {
		return Created{}, err
	}

	if err = uow.HarvestRepository().Add(ctx, harvest); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: harvest.ID(), Code: harvest.Code()}, nil
}
