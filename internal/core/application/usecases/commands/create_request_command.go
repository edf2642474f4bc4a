package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand places a purchase request on an offer. Without a
// price the offer's price is used.
type CreateRequestCommand struct {
	actor     kernel.Actor
	offerID   kernel.ID
	requested kernel.Quantity
	price     *kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	actor kernel.Actor,
	offerID kernel.ID,
	requested kernel.Quantity,
	price *kernel.Money,
) (CreateRequestCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		offerID.Validate(),
		requested.ValidatePositive("requested quantity"),
	); err != nil {
		return CreateRequestCommand{}, err
	}
	if price != nil {
		if err := price.Validate(); err != nil {
			return CreateRequestCommand{}, err
		}
	}
	return CreateRequestCommand{
		actor:     actor,
		offerID:   offerID,
		requested: requested,
		price:     price,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateRequestCommand) OfferID() kernel.ID         { return c.offerID }
func (c CreateRequestCommand) Requested() kernel.Quantity { return c.requested }
func (c CreateRequestCommand) Price() *kernel.Money       { return c.price }
