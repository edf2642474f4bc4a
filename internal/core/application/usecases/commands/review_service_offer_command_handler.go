package commands

import (
	"context"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/service"
)

// ReviewServiceOfferCommandHandler approves or rejects a service offer.
//
// Approving confirms the request, and the request's other Pending offers are
// rejected in the same transaction. Every mill whose offer changed status is
// notified.
type ReviewServiceOfferCommandHandler struct {
	uowFactory ServiceUoWFactory
}

func NewReviewServiceOfferCommandHandler(uowFactory ServiceUoWFactory) ReviewServiceOfferCommandHandler {
	return ReviewServiceOfferCommandHandler{uowFactory: uowFactory}
}

func (h ReviewServiceOfferCommandHandler) Handle(ctx context.Context, cmd ReviewServiceOfferCommand) error {
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

	offers := uow.ServiceOfferRepository()
	offer, err := offers.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}
	request, err := uow.ServiceRequestRepository().Get(ctx, offer.RequestID())
	if err != nil {
		return err
	}
	if !request.IsRequestedBy(cmd.Actor().ID()) {
		action := "reject"
		if cmd.Approve() {
			action = "approve"
		}
		return denied(action, offer.Code(), cmd.Actor())
	}

	now := time.Now().UTC()
	if !cmd.Approve() {
		if err = offer.Reject(now); err != nil {
			return err
		}
		if err = rejected(ctx, uow, offer, now); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	if err = offer.Approve(request, now); err != nil {
		return err
	}
	if err = offers.Update(ctx, offer); err != nil {
		return err
	}
	if err = uow.ServiceRequestRepository().Update(ctx, request); err != nil {
		return err
	}
	if err = notifyMill(ctx, uow, offer, notification.ServiceOfferApprovedEvent, now); err != nil {
		return err
	}

	siblings, err := offers.ListByRequest(ctx, request.ID())
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if sibling.ID() == offer.ID() || sibling.Status() != service.OfferPending {
			continue
		}
		if err = sibling.Reject(now); err != nil {
			return err
		}
		if err = rejected(ctx, uow, sibling, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func rejected(ctx context.Context, uow ServiceUoW, offer *service.Offer, at time.Time) error {
	if err := uow.ServiceOfferRepository().Update(ctx, offer); err != nil {
		return err
	}
	return notifyMill(ctx, uow, offer, notification.ServiceOfferRejectedEvent, at)
}

func notifyMill(
	ctx context.Context,
	uow ServiceUoW,
	offer *service.Offer,
	eventFor func(kernel.Party, kernel.Code, time.Time) (notification.Event, error),
	at time.Time,
) error {
	mill, err := kernel.NewMill(offer.MillID())
	if err != nil {
		return err
	}
	event, err := eventFor(mill, offer.Code(), at)
	if err != nil {
		return err
	}
	return uow.OutboxRepository().Add(ctx, event)
}
