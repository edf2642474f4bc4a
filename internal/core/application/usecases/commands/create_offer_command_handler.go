package commands

import (
	"context"
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/core/domain/services"
	"oliveflow/internal/pkg/errs"
)

// CreateOfferCommandHandler puts a good on sale.
//
// Business rules:
//   - the acting party must own the good: the grove's farmer for a harvest,
//     the current holder for an oil product
//   - the offer's initial quantity is allocated from the good's remaining
//     quantity, so two offers can never sell the same olives twice
//   - an offer answering a need marks it Responded and notifies its creator
type CreateOfferCommandHandler struct {
	uowFactory TradeUoWFactory
	resolver   services.OwnershipResolver
}

func NewCreateOfferCommandHandler(uowFactory TradeUoWFactory) CreateOfferCommandHandler {
	return CreateOfferCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewOwnershipResolver(),
	}
}

func (h CreateOfferCommandHandler) Handle(ctx context.Context, cmd CreateOfferCommand) (Created, error) {
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

	seller, err := actingParty(ctx, cmd.Actor(), uow.MillRepository())
	if err != nil {
		return Created{}, err
	}

	goodMotherID, err := h.allocate(ctx, uow, cmd, seller)
	if err != nil {
		return Created{}, err
	}

	now := time.Now().UTC()
	offer, err := trade.NewOffer(cmd.Kind(), cmd.GoodID(), seller, cmd.Initial(), cmd.Price(), now)
	if err != nil {
		return Created{}, err
	}

	if cmd.Transport() != trade.UnspecifiedTransport {
		if err = offer.ArrangeTransport(cmd.Transport()); err != nil {
			return Created{}, err
		}
	}

	if id := cmd.MotherOfferID(); id != nil {
		mother, getErr := uow.OfferRepository().Get(ctx, *id)
		if getErr != nil {
			return Created{}, getErr
		}
		if err = offer.DeriveFrom(mother, goodMotherID); err != nil {
			return Created{}, err
		}
	}

	var need *trade.Need
	if id := cmd.NeedID(); id != nil {
		if need, err = uow.NeedRepository().Get(ctx, *id); err != nil {
			return Created{}, err
		}
		if err = offer.AnswerNeed(need, now); err != nil {
			return Created{}, err
		}
	}

	if err = uow.OfferRepository().Add(ctx, offer); err != nil {
		return Created{}, err
	}

	if need != nil {
		if err = uow.NeedRepository().Update(ctx, need); err != nil {
			return Created{}, err
		}
		event, eventErr := notification.NeedAnsweredEvent(need.Creator(), need.Code(), offer.Code(), now)
		if eventErr != nil {
			return Created{}, eventErr
		}
		if err = uow.OutboxRepository().Add(ctx, event); err != nil {
			return Created{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return Created{}, err
	}

	return Created{ID: offer.ID(), Code: offer.Code()}, nil
}

// allocate checks that seller owns the good and takes the offer's quantity
// out of what the good has left. For oil it returns the product the good was
// split from, if any.
func (h CreateOfferCommandHandler) allocate(
	ctx context.Context,
	uow TradeUoW,
	cmd CreateOfferCommand,
	seller kernel.Party,
) (*kernel.ID, error) {
	switch cmd.Kind() {
	case trade.Olive:
		harvest, err := uow.HarvestRepository().Get(ctx, cmd.GoodID())
		if err != nil {
			return nil, err
		}
		grove, err := uow.GroveRepository().Get(ctx, harvest.GroveID())
		if err != nil {
			return nil, err
		}
		owner, err := grove.Farmer()
		if err != nil {
			return nil, err
		}
		if !owner.IsEqual(seller) {
			return nil, notOwner(harvest.Code(), seller)
		}
		if err = harvest.Allocate(cmd.Initial()); err != nil {
			return nil, err
		}
		return nil, uow.HarvestRepository().Update(ctx, harvest)

	case trade.Oil:
		product, err := uow.OilProductRepository().Get(ctx, cmd.GoodID())
		if err != nil {
			return nil, err
		}
		lineage, err := uow.LineageReader().Load(ctx, product.ID())
		if err != nil {
			return nil, err
		}
		holder, ok := h.resolver.Holder(lineage, product.ID())
		if !ok || !holder.IsEqual(seller) {
			return nil, notOwner(product.Code(), seller)
		}
		if err = product.Allocate(cmd.Initial()); err != nil {
			return nil, err
		}
		return product.MotherID(), uow.OilProductRepository().Update(ctx, product)

	default:
		return nil, cmd.Kind().Validate()
	}
}

func notOwner(good kernel.Code, party kernel.Party) error {
	return errs.NewValueIsInvalidErrorWithCause("good", fmt.Errorf("%s is not owned by %s", good, party))
}
