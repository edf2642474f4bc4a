package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/trade"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateOfferCommandIsNotConstructed = errors.New(
	"CreateOfferCommand must be created via NewCreateOfferCommand constructor",
)

// CreateOfferCommand puts part of a good the actor owns on sale.
//
// The good is a harvest for olive offers and an oil product for oil offers.
// NeedID optionally names the need this offer answers; MotherOfferID the oil
// offer it was split from. Transport is left unspecified when the seller
// has not said how the goods travel.
type CreateOfferCommand struct {
	actor         kernel.Actor
	kind          trade.Kind
	goodID        kernel.ID
	initial       kernel.Quantity
	price         kernel.Money
	transport     trade.Transport
	needID        *kernel.ID
	motherOfferID *kernel.ID

	guard guard.ConstructorGuard
}

func NewCreateOfferCommand(
	actor kernel.Actor,
	kind trade.Kind,
	goodID kernel.ID,
	initial kernel.Quantity,
	price kernel.Money,
	transport trade.Transport,
	needID *kernel.ID,
	motherOfferID *kernel.ID,
) (CreateOfferCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		kind.Validate(),
		goodID.Validate(),
		initial.ValidatePositive("initial quantity"),
		price.Validate(),
		transport.Validate(),
	); err != nil {
		return CreateOfferCommand{}, err
	}
	return CreateOfferCommand{
		actor:         actor,
		kind:          kind,
		goodID:        goodID,
		initial:       initial,
		price:         price,
		transport:     transport,
		needID:        needID,
		motherOfferID: motherOfferID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateOfferCommandIsNotConstructed)
}

func (c CreateOfferCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateOfferCommand) Kind() trade.Kind           { return c.kind }
func (c CreateOfferCommand) GoodID() kernel.ID          { return c.goodID }
func (c CreateOfferCommand) Initial() kernel.Quantity   { return c.initial }
func (c CreateOfferCommand) Price() kernel.Money        { return c.price }
func (c CreateOfferCommand) Transport() trade.Transport { return c.transport }
func (c CreateOfferCommand) NeedID() *kernel.ID         { return c.needID }
func (c CreateOfferCommand) MotherOfferID() *kernel.ID  { return c.motherOfferID }
