package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/services"
)

// CreateServiceRequestCommandHandler posts a farmer's service request.
//
// The subject must be the farmer's: a harvest of one of their groves, or an
// oil product they hold. For extraction the considered quantity is allocated
// from the harvest until the request is cancelled.
type CreateServiceRequestCommandHandler struct {
	uowFactory ServiceUoWFactory
	resolver   services.OwnershipResolver
}

func NewCreateServiceRequestCommandHandler(uowFactory ServiceUoWFactory) CreateServiceRequestCommandHandler {
	return CreateServiceRequestCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewOwnershipResolver(),
	}
}

func (h CreateServiceRequestCommandHandler) Handle(ctx context.Context, cmd CreateServiceRequestCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("request a service", kernel.FarmerRole); err != nil {
		return Created{}, err
	}
	farmer, err := kernel.NewFarmer(cmd.Actor().ID())
	if err != nil {
		return Created{}, err
	}

	request, err := service.NewRequest(
		cmd.Kind(), cmd.Actor().ID(), cmd.SubjectID(), cmd.Considered(), cmd.Price(), time.Now().UTC(), cmd.Details())
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

	if cmd.Kind().ActsOnHarvest() {
		harvest, getErr := uow.HarvestRepository().Get(ctx, cmd.SubjectID())
		if getErr != nil {
			return Created{}, getErr
		}
		grove, getErr := uow.GroveRepository().Get(ctx, harvest.GroveID())
		if getErr != nil {
			return Created{}, getErr
		}
		if !grove.FarmerID().IsEqual(cmd.Actor().ID()) {
			return Created{}, notOwner(harvest.Code(), farmer)
		}
		if err = harvest.Allocate(cmd.Considered()); err != nil {
			return Created{}, err
		}
		if err = uow.HarvestRepository().Update(ctx, harvest); err != nil {
			return Created{}, err
		}
	} else {
		product, getErr := uow.OilProductRepository().Get(ctx, cmd.SubjectID())
		if getErr != nil {
			return Created{}, getErr
		}
		lineage, loadErr := uow.LineageReader().Load(ctx, product.ID())
		if loadErr != nil {
			return Created{}, loadErr
		}
		if holder, ok := h.resolver.Holder(lineage, product.ID()); !ok || !holder.IsEqual(farmer) {
			return Created{}, notOwner(product.Code(), farmer)
		}
	}

	if err = uow.ServiceRequestRepository().Add(ctx, request); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: request.ID(), Code: request.Code()}, nil
}
