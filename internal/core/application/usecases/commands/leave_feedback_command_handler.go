package commands

import (
	"context"
)

type LeaveFeedbackCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewLeaveFeedbackCommandHandler(uowFactory TradeUoWFactory) LeaveFeedbackCommandHandler {
	return LeaveFeedbackCommandHandler{uowFactory: uowFactory}
}

// Handle stores the buyer's appreciation of a Bought request. Feedback is
// left once.
func (h LeaveFeedbackCommandHandler) Handle(ctx context.Context, cmd LeaveFeedbackCommand) error {
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
	buyer, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return err
	}
	if !request.IsPlacedBy(buyer) {
		return denied("rate", request.Code(), cmd.Actor())
	}

	if err = request.LeaveFeedback(cmd.Appreciation(), cmd.Feedback()); err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
