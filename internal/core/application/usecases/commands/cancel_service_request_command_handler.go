package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/service"
)

// CancelServiceRequestCommandHandler cancels an open service request. Olives
// allocated to an extraction request go back to the harvest. Pending offers
// on it are rejected and their mills are told.
type CancelServiceRequestCommandHandler struct {
	uowFactory ServiceUoWFactory
}

func NewCancelServiceRequestCommandHandler(uowFactory ServiceUoWFactory) CancelServiceRequestCommandHandler {
	return CancelServiceRequestCommandHandler{uowFactory: uowFactory}
}

func (h CancelServiceRequestCommandHandler) Handle(ctx context.Context, cmd CancelServiceRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.ServiceRequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if !request.IsRequestedBy(cmd.Actor().ID()) {
		return denied("cancel", request.Code(), cmd.Actor())
	}

	now := time.Now().UTC()
	if err = request.Cancel(now); err != nil {
		return err
	}
	if err = uow.ServiceRequestRepository().Update(ctx, request); err != nil {
		return err
	}

	if request.Kind().ActsOnHarvest() {
		harvest, getErr := uow.HarvestRepository().Get(ctx, request.SubjectID())
		if getErr != nil {
			return getErr
		}
		if err = harvest.Release(request.Considered()); err != nil {
			return err
		}
		if err = uow.HarvestRepository().Update(ctx, harvest); err != nil {
			return err
		}
	}

	offers, err := uow.ServiceOfferRepository().ListByRequest(ctx, request.ID())
	if err != nil {
		return err
	}
	for _, offer := range offers {
		if offer.Status() != service.OfferPending {
			continue
		}
		if err = offer.Reject(now); err != nil {
			return err
		}
		if err = uow.ServiceOfferRepository().Update(ctx, offer); err != nil {
			return err
		}
		mill, partyErr := kernel.NewMill(offer.MillID())
		if partyErr != nil {
			return partyErr
		}
		event, eventErr := notification.ServiceRequestCancelledEvent(mill, request.Code(), now)
		if eventErr != nil {
			return eventErr
		}
		if err = uow.OutboxRepository().Add(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
