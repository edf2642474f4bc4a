package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/core/domain/services"
)

// ConfirmPurchaseCommandHandler completes a purchase.
//
// The offer is written back with a version check, so of two confirmations
// racing for the same offer one fails with a retryable conflict and neither
// can take more than is available. The transfer record is created in the same
// transaction: purchased olives for the buying mill, or a new oil product for
// the buyer of oil.
type ConfirmPurchaseCommandHandler struct {
	uowFactory TradeUoWFactory
	confirmer  services.PurchaseConfirmer
}

func NewConfirmPurchaseCommandHandler(uowFactory TradeUoWFactory) ConfirmPurchaseCommandHandler {
	return ConfirmPurchaseCommandHandler{
		uowFactory: uowFactory,
		confirmer:  services.NewPurchaseConfirmer(),
	}
}

func (h ConfirmPurchaseCommandHandler) Handle(ctx context.Context, cmd ConfirmPurchaseCommand) (services.Purchase, error) {
	if err := cmd.Validate(); err != nil {
		return services.Purchase{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Purchase{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return services.Purchase{}, err
	}
	buyer, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return services.Purchase{}, err
	}
	if !request.IsPlacedBy(buyer) {
		return services.Purchase{}, denied("confirm", request.Code(), cmd.Actor())
	}
	offer, err := uow.OfferRepository().Get(ctx, request.OfferID())
	if err != nil {
		return services.Purchase{}, err
	}

	now := time.Now().UTC()
	purchase, err := h.confirmer.Confirm(offer, request, now)
	if err != nil {
		return services.Purchase{}, err
	}

	if err = uow.OfferRepository().Update(ctx, offer); err != nil {
		return services.Purchase{}, err
	}
	if err = uow.RequestRepository().Update(ctx, request); err != nil {
		return services.Purchase{}, err
	}
	if err = h.transfer(ctx, uow, offer, request, now); err != nil {
		return services.Purchase{}, err
	}

	event, err := notification.PurchaseConfirmedEvent(
		offer.Seller(), offer.Code(), request.Requested(), offer.Kind().GoodName(), purchase.Closed, now)
	if err != nil {
		return services.Purchase{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return services.Purchase{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Purchase{}, err
	}

	return purchase, nil
}

func (h ConfirmPurchaseCommandHandler) transfer(
	ctx context.Context,
	uow TradeUoW,
	offer *trade.Offer,
	request *trade.Request,
	at time.Time,
) error {
	if offer.Kind() == trade.Olive {
		harvest, err := uow.HarvestRepository().Get(ctx, offer.GoodID())
		if err != nil {
			return err
		}
		olives, err := h.confirmer.OliveTransfer(request, harvest, at)
		if err != nil {
			return err
		}
		return uow.PurchasedOliveRepository().Add(ctx, olives)
	}

	mother, err := uow.OilProductRepository().Get(ctx, offer.GoodID())
	if err != nil {
		return err
	}
	product, err := h.confirmer.OilTransfer(request, mother, at)
	if err != nil {
		return err
	}
	return uow.OilProductRepository().Add(ctx, product)
}
