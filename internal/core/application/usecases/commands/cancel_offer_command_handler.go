package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/trade"
)

// CancelOfferCommandHandler withdraws an Available offer.
// What was still available goes back to the good, and every buyer with an
// open request on the offer is notified. Their requests are left as they are.
type CancelOfferCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewCancelOfferCommandHandler(uowFactory TradeUoWFactory) CancelOfferCommandHandler {
	return CancelOfferCommandHandler{uowFactory: uowFactory}
}

func (h CancelOfferCommandHandler) Handle(ctx context.Context, cmd CancelOfferCommand) error {
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

	offer, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}
	seller, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return err
	}
	if !offer.IsOwnedBy(seller) {
		return denied("cancel", offer.Code(), cmd.Actor())
	}

	now := time.Now().UTC()
	released, err := offer.Cancel(now)
	if err != nil {
		return err
	}
	if err = uow.OfferRepository().Update(ctx, offer); err != nil {
		return err
	}
	if !released.IsZero() {
		if err = release(ctx, uow, offer, released); err != nil {
			return err
		}
	}

	open, err := uow.RequestRepository().ListOpenByOffer(ctx, offer.ID())
	if err != nil {
		return err
	}
	for _, request := range open {
		event, eventErr := notification.OfferCancelledEvent(request.Buyer(), offer.Code(), now)
		if eventErr != nil {
			return eventErr
		}
		if err = uow.OutboxRepository().Add(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func release(ctx context.Context, uow TradeUoW, offer *trade.Offer, amount kernel.Quantity) error {
	if offer.Kind() == trade.Olive {
		harvest, err := uow.HarvestRepository().Get(ctx, offer.GoodID())
		if err != nil {
			return err
		}
		if err = harvest.Release(amount); err != nil {
			return err
		}
		return uow.HarvestRepository().Update(ctx, harvest)
	}

	product, err := uow.OilProductRepository().Get(ctx, offer.GoodID())
	if err != nil {
		return err
	}
	if err = product.Release(amount); err != nil {
		return err
	}
	return uow.OilProductRepository().Update(ctx, product)
}
