package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrCancelOfferCommandIsNotConstructed = errors.New(
	"CancelOfferCommand must be created via NewCancelOfferCommand constructor",
)

type CancelOfferCommand struct {
	actor   kernel.Actor
	offerID kernel.ID

	guard guard.ConstructorGuard
}

func NewCancelOfferCommand(actor kernel.Actor, offerID kernel.ID) (CancelOfferCommand, error) {
	if err := errors.Join(actor.Validate(), offerID.Validate()); err != nil {
		return CancelOfferCommand{}, err
	}
	return CancelOfferCommand{
		actor:   actor,
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOfferCommand) Validate() error {
	return c.guard.Validate(ErrCancelOfferCommandIsNotConstructed)
}

func (c CancelOfferCommand) Actor() kernel.Actor { return c.actor }
func (c CancelOfferCommand) OfferID() kernel.ID  { return c.offerID }
