package commands

import (
	"errors"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/guard"
)

var ErrConfirmPurchaseCommandIsNotConstructed = errors.New(
	"ConfirmPurchaseCommand must be created via NewConfirmPurchaseCommand constructor",
)

// ConfirmPurchaseCommand is the buyer confirming their own request.
type ConfirmPurchaseCommand struct {
	actor     kernel.Actor
	requestID kernel.ID

	guard guard.ConstructorGuard
}

func NewConfirmPurchaseCommand(actor kernel.Actor, requestID kernel.ID) (ConfirmPurchaseCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return ConfirmPurchaseCommand{}, err
	}
	return ConfirmPurchaseCommand{
		actor:     actor,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPurchaseCommandIsNotConstructed)
}

func (c ConfirmPurchaseCommand) Actor() kernel.Actor  { return c.actor }
func (c ConfirmPurchaseCommand) RequestID() kernel.ID { return c.requestID }
