package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/notification"
)

// ReviewRequestCommandHandler approves or rejects a Pending request. Only the
// party that owns the offer may do either; the buyer is notified.
type ReviewRequestCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewReviewRequestCommandHandler(uowFactory TradeUoWFactory) ReviewRequestCommandHandler {
	return ReviewRequestCommandHandler{uowFactory: uowFactory}
}

func (h ReviewRequestCommandHandler) Handle(ctx context.Context, cmd ReviewRequestCommand) error {
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

	request, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	offer, err := uow.OfferRepository().Get(ctx, request.OfferID())
	if err != nil {
		return err
	}
	seller, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return err
	}

	action, eventFor := "reject", notification.RequestRejectedEvent
	if cmd.Approve() {
		action, eventFor = "approve", notification.RequestApprovedEvent
	}
	if !offer.IsOwnedBy(seller) {
		return denied(action, request.Code(), cmd.Actor())
	}

	now := time.Now().UTC()
	if cmd.Approve() {
		err = request.Approve(now)
	} else {
		err = request.Reject(now)
	}
	if err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, request); err != nil {
		return err
	}

	event, err := eventFor(request.Buyer(), request.Code(), request.Requested(), offer.Kind().GoodName(), now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
