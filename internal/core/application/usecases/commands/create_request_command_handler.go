package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/trade"
)

// CreateRequestCommandHandler places a Pending request on an Available offer
// and notifies the seller. Nothing is reserved yet: the quantity is checked
// again when the purchase is confirmed.
type CreateRequestCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewCreateRequestCommandHandler(uowFactory TradeUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{uowFactory: uowFactory}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (Created, error) {
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

	offer, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return Created{}, err
	}

	buyer, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return Created{}, err
	}

	price := offer.Price()
	if cmd.Price() != nil {
		price = *cmd.Price()
	}

	now := time.Now().UTC()
	request, err := trade.NewRequest(offer, buyer, cmd.Requested(), price, now)
	if err != nil {
		return Created{}, err
	}

	if err = uow.RequestRepository().Add(ctx, request); err != nil {
		return Created{}, err
	}

	event, err := notification.RequestPlacedEvent(offer.Seller(), offer.Code(), request.Requested(), now)
	if err != nil {
		return Created{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: request.ID(), Code: request.Code()}, nil
}
