package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrCreateServiceOfferCommandIsNotConstructed = errors.New(
	"CreateServiceOfferCommand must be created via NewCreateServiceOfferCommand constructor",
)

// CreateServiceOfferCommand is a mill manager answering a service request
// on behalf of their mill.
type CreateServiceOfferCommand struct {
	actor      kernel.Actor
	requestID  kernel.ID
	price      kernel.Money
	negotiable bool

	guard guard.ConstructorGuard
}

func NewCreateServiceOfferCommand(
	actor kernel.Actor,
	requestID kernel.ID,
	price kernel.Money,
	negotiable bool,
) (CreateServiceOfferCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate(), price.Validate()); err != nil {
		return CreateServiceOfferCommand{}, err
	}
	return CreateServiceOfferCommand{
		actor:      actor,
		requestID:  requestID,
		price:      price,
		negotiable: negotiable,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateServiceOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceOfferCommandIsNotConstructed)
}

func (c CreateServiceOfferCommand) Actor() kernel.Actor  { return c.actor }
func (c CreateServiceOfferCommand) RequestID() kernel.ID { return c.requestID }
func (c CreateServiceOfferCommand) Price() kernel.Money  { return c.price }
func (c CreateServiceOfferCommand) Negotiable() bool     { return c.negotiable }
