package commands

import (
	"context"

	"oliveflow/internal/core/domain/model/trade"
)

type CreateNeedCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewCreateNeedCommandHandler(uowFactory TradeUoWFactory) CreateNeedCommandHandler {
	return CreateNeedCommandHandler{uowFactory: uowFactory}
}

// Handle creates a Pending need on behalf of the acting party. Olive needs
// come from mills only; oil needs from mills or consumers.
func (h CreateNeedCommandHandler) Handle(ctx context.Context, cmd CreateNeedCommand) (Created, error) {
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

	creator, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return Created{}, err
	}

	need, err := trade.NewNeed(cmd.Kind(), creator, cmd.Quantity(), cmd.MaxPrice(), cmd.NeedDate(), cmd.Description())
	if err != nil {
		return Created{}, err
	}

	if err = uow.NeedRepository().Add(ctx, need); err != nil {
		return Created{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: need.ID(), Code: need.Code()}, nil
}
