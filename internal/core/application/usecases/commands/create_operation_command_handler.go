package commands

import (
	"context"
	"fmt"

	"oliveflow/internal/core/domain/model/facility"
	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"
)

// CreateOperationCommandHandler records a direct extraction and stores the
// oil it produced.
//
// Business rules:
//   - from a harvest: the actor is the grove's farmer, the mill is named in
//     the command and the pressed olives are allocated from the harvest
//   - from purchased olives: the actor manages the mill that bought every one
//     of them, and each lot is consumed by this operation only
type CreateOperationCommandHandler struct {
	uowFactory ServiceUoWFactory
	completer  services.OperationCompleter
}

func NewCreateOperationCommandHandler(uowFactory ServiceUoWFactory) CreateOperationCommandHandler {
	return CreateOperationCommandHandler{
		uowFactory: uowFactory,
		completer:  services.NewOperationCompleter(),
	}
}

func (h CreateOperationCommandHandler) Handle(ctx context.Context, cmd CreateOperationCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Created{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		mill   *facility.OilMill
		olives []*good.PurchasedOlive
		err    error
	)
	if harvestID, ok := cmd.Source().HarvestID(); ok {
		mill, err = h.fromHarvest(ctx, uow, cmd, harvestID)
	} else {
		mill, olives, err = h.fromPurchases(ctx, uow, cmd)
	}
	if err != nil {
		return Created{}, err
	}

	op, err := service.NewOperation(service.Extraction, mill.ID(), cmd.Source(), nil, cmd.Record())
	if err != nil {
		return Created{}, err
	}
	if err = uow.OperationRepository().Add(ctx, op); err != nil {
		return Created{}, err
	}

	for _, lot := range olives {
		if err = lot.Consume(op.ID()); err != nil {
			return Created{}, err
		}
		if err = uow.PurchasedOliveRepository().Update(ctx, lot); err != nil {
			return Created{}, err
		}
	}

	if err = extract(ctx, uow, h.completer, op); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: op.ID(), Code: op.Code()}, nil
}

func (h CreateOperationCommandHandler) fromHarvest(
	ctx context.Context,
	uow ServiceUoW,
	cmd CreateOperationCommand,
	harvestID kernel.ID,
) (*facility.OilMill, error) {
	if err := cmd.Actor().RequireRole("press a harvest", kernel.FarmerRole); err != nil {
		return nil, err
	}
	if cmd.MillID() == nil {
		return nil, errs.NewValueIsRequiredError("oil mill")
	}

	harvest, err := uow.HarvestRepository().Get(ctx, harvestID)
	if err != nil {
		return nil, err
	}
	grove, err := uow.GroveRepository().Get(ctx, harvest.GroveID())
	if err != nil {
		return nil, err
	}
	if !grove.FarmerID().IsEqual(cmd.Actor().ID()) {
		return nil, denied("press", harvest.Code(), cmd.Actor())
	}
	mill, err := uow.MillRepository().Get(ctx, *cmd.MillID())
	if err != nil {
		return nil, err
	}

	if err = harvest.Allocate(cmd.Record().OlivesQuantity); err != nil {
		return nil, err
	}
	if err = uow.HarvestRepository().Update(ctx, harvest); err != nil {
		return nil, err
	}
	return mill, nil
}

func (h CreateOperationCommandHandler) fromPurchases(
	ctx context.Context,
	uow ServiceUoW,
	cmd CreateOperationCommand,
) (*facility.OilMill, []*good.PurchasedOlive, error) {
	if err := cmd.Actor().RequireRole("press purchased olives", kernel.MillManagerRole); err != nil {
		return nil, nil, err
	}
	mill, err := uow.MillRepository().GetByManager(ctx, cmd.Actor().ID())
	if err != nil {
		return nil, nil, err
	}
	if id := cmd.MillID(); id != nil && *id != mill.ID() {
		return nil, nil, errs.NewPermissionDeniedError(
			fmt.Sprintf("record an operation at mill %s", id), cmd.Actor().String())
	}

	ids := cmd.Source().PurchasedOliveIDs()
	olives := make([]*good.PurchasedOlive, 0, len(ids))
	for _, id := range ids {
		lot, getErr := uow.PurchasedOliveRepository().Get(ctx, id)
		if getErr != nil {
			return nil, nil, getErr
		}
		if lot.MillID() != mill.ID() {
			return nil, nil, errs.NewValueIsInvalidErrorWithCause(
				"purchased olives", fmt.Errorf("lot %s was bought by another mill", id))
		}
		if lot.IsConsumed() {
			return nil, nil, errs.NewConflictError(
				"purchased olives", fmt.Errorf("lot %s was already pressed", id))
		}
		olives = append(olives, lot)
	}
	return mill, olives, nil
}
