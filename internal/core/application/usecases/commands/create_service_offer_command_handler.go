package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/service"
)

// CreateServiceOfferCommandHandler lets a mill answer an open service
// request. The request moves to Responded and the farmer is notified.
type CreateServiceOfferCommandHandler struct {
	uowFactory ServiceUoWFactory
}

func NewCreateServiceOfferCommandHandler(uowFactory ServiceUoWFactory) CreateServiceOfferCommandHandler {
	return CreateServiceOfferCommandHandler{uowFactory: uowFactory}
}

func (h CreateServiceOfferCommandHandler) Handle(ctx context.Context, cmd CreateServiceOfferCommand) (Created, error) {
	if err := cmd.Validate(); err != nil {
		return Created{}, err
	}
	if err := cmd.Actor().RequireRole("offer a service", kernel.MillManagerRole); err != nil {
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
	request, err := uow.ServiceRequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return Created{}, err
	}

	now := time.Now().UTC()
	offer, err := service.NewOffer(request, mill, cmd.Price(), now, cmd.Negotiable())
	if err != nil {
		return Created{}, err
	}

	if err = uow.ServiceOfferRepository().Add(ctx, offer); err != nil {
		return Created{}, err
	}
	if err = uow.ServiceRequestRepository().Update(ctx, request); err != nil {
		return Created{}, err
	}

	farmer, err := kernel.NewFarmer(request.FarmerID())
	if err != nil {
		return Created{}, err
	}
	event, err := notification.ServiceOfferedEvent(farmer, request.Code(), offer.Price(), now)
	if err != nil {
		return Created{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: offer.ID(), Code: offer.Code()}, nil
}
